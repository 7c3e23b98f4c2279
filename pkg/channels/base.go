// Package channels implements the transport adapters (Telegram, Slack,
// Discord, local CLI) that deliver inbound chat messages onto the bus and
// accept outbound send requests.
package channels

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Send(ctx context.Context, msg bus.OutboundMessage) error
	IsRunning() bool
	IsAllowed(senderID string) bool
}

// CommandPublisher is an opt-in interface for channels whose transport has a
// native command-menu endpoint. The Manager uses it via type assertion when
// publishing the command menu.
type CommandPublisher interface {
	PublishCommands(ctx context.Context, commands []dispatch.CommandInfo) error
}

// BaseChannelOption is a functional option for configuring a BaseChannel.
type BaseChannelOption func(*BaseChannel)

// WithMaxMessageLength sets the maximum message length (in runes) for a
// channel. Longer outbound messages are split by the Manager. Zero means no
// limit.
func WithMaxMessageLength(n int) BaseChannelOption {
	return func(c *BaseChannel) { c.maxMessageLength = n }
}

// MessageLengthProvider is an opt-in interface that channels implement to
// advertise their maximum message length. The Manager uses this via type
// assertion to decide whether to split outbound messages.
type MessageLengthProvider interface {
	MaxMessageLength() int
}

type BaseChannel struct {
	bus              *bus.MessageBus
	running          atomic.Bool
	name             string
	allowList        []string
	maxMessageLength int
}

func NewBaseChannel(name string, msgBus *bus.MessageBus, allowList []string, opts ...BaseChannelOption) *BaseChannel {
	bc := &BaseChannel{
		bus:       msgBus,
		name:      name,
		allowList: allowList,
	}
	for _, opt := range opts {
		opt(bc)
	}
	return bc
}

// MaxMessageLength returns the maximum message length (in runes) for this
// channel. Zero means no limit.
func (c *BaseChannel) MaxMessageLength() int {
	return c.maxMessageLength
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) IsRunning() bool {
	return c.running.Load()
}

// IsAllowed reports whether senderID passes the allow-list. An empty list
// allows everyone. Entries and sender IDs may use the compound "id|username"
// form; either side may match, and a leading "@" on an entry is ignored.
func (c *BaseChannel) IsAllowed(senderID string) bool {
	if len(c.allowList) == 0 {
		return true
	}

	idPart, userPart := splitCompoundID(senderID)

	for _, allowed := range c.allowList {
		trimmed := strings.TrimPrefix(allowed, "@")
		allowedID, allowedUser := splitCompoundID(trimmed)

		if senderID == trimmed || idPart == allowedID ||
			(allowedUser != "" && (idPart == allowedUser || userPart == allowedUser)) ||
			(userPart != "" && (userPart == allowedID || userPart == trimmed)) {
			return true
		}
	}

	return false
}

func splitCompoundID(id string) (idPart, userPart string) {
	if i := strings.Index(id, "|"); i > 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

// HandleMessage filters by allow-list, normalizes and publishes one inbound
// message. Transports without message IDs get a generated one.
func (c *BaseChannel) HandleMessage(messageID, senderID, chatID, content string, metadata map[string]string) {
	if !c.IsAllowed(senderID) {
		return
	}

	if messageID == "" {
		messageID = uuid.New().String()
	}

	msg := bus.InboundMessage{
		Channel:   c.name,
		SenderID:  senderID,
		ChatID:    chatID,
		Content:   content,
		MessageID: messageID,
		Metadata:  metadata,
	}

	c.bus.PublishInbound(context.TODO(), msg)
}

func (c *BaseChannel) SetRunning(running bool) {
	c.running.Store(running)
}
