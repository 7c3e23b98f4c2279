package channels

import (
	"context"
	"sort"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
	"github.com/tinyland-inc/gofer/pkg/logger"
)

// Manager owns the set of enabled channels: it starts and stops them,
// delivers outbound messages from the bus (splitting where a channel caps
// message length) and publishes the command menu to channels that support
// one.
type Manager struct {
	channels map[string]Channel
	bus      *bus.MessageBus
}

// NewManager builds every channel enabled in cfg.
func NewManager(cfg *config.Config, msgBus *bus.MessageBus) (*Manager, error) {
	m := &Manager{
		channels: make(map[string]Channel),
		bus:      msgBus,
	}

	if cfg.Channels.Telegram.Enabled {
		ch, err := NewTelegramChannel(cfg.Channels.Telegram, msgBus)
		if err != nil {
			return nil, err
		}
		m.channels[ch.Name()] = ch
	}
	if cfg.Channels.Slack.Enabled {
		ch, err := NewSlackChannel(cfg.Channels.Slack, msgBus)
		if err != nil {
			return nil, err
		}
		m.channels[ch.Name()] = ch
	}
	if cfg.Channels.Discord.Enabled {
		ch, err := NewDiscordChannel(cfg.Channels.Discord, msgBus)
		if err != nil {
			return nil, err
		}
		m.channels[ch.Name()] = ch
	}

	return m, nil
}

// AddChannel registers an extra channel (used for the local CLI transport).
func (m *Manager) AddChannel(ch Channel) {
	m.channels[ch.Name()] = ch
}

func (m *Manager) GetChannel(name string) (Channel, bool) {
	ch, ok := m.channels[name]
	return ch, ok
}

func (m *Manager) GetEnabledChannels() []string {
	names := make([]string, 0, len(m.channels))
	for name := range m.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StartAll starts every channel and the outbound delivery loop. A channel
// that fails to start is logged and skipped; the others keep running.
func (m *Manager) StartAll(ctx context.Context) error {
	for name, ch := range m.channels {
		if err := ch.Start(ctx); err != nil {
			logger.ErrorCF("channels", "Channel failed to start",
				map[string]any{"channel": name, "error": err.Error()})
		}
	}

	go m.outboundLoop(ctx)
	return nil
}

func (m *Manager) StopAll(ctx context.Context) {
	for name, ch := range m.channels {
		if !ch.IsRunning() {
			continue
		}
		if err := ch.Stop(ctx); err != nil {
			logger.WarnCF("channels", "Channel failed to stop",
				map[string]any{"channel": name, "error": err.Error()})
		}
	}
}

// PublishCommandMenu pushes the command list to every running channel whose
// transport has a native menu endpoint.
func (m *Manager) PublishCommandMenu(ctx context.Context, commands []dispatch.CommandInfo) {
	for name, ch := range m.channels {
		publisher, ok := ch.(CommandPublisher)
		if !ok {
			continue
		}
		if err := publisher.PublishCommands(ctx, commands); err != nil {
			logger.WarnCF("channels", "Publishing command menu failed",
				map[string]any{"channel": name, "error": err.Error()})
		}
	}
}

func (m *Manager) outboundLoop(ctx context.Context) {
	for {
		msg, ok := m.bus.SubscribeOutbound(ctx)
		if !ok {
			return
		}
		m.deliver(ctx, msg)
	}
}

func (m *Manager) deliver(ctx context.Context, msg bus.OutboundMessage) {
	ch, ok := m.channels[msg.Channel]
	if !ok {
		logger.WarnCF("channels", "Outbound message for unknown channel",
			map[string]any{"channel": msg.Channel})
		return
	}

	parts := []string{msg.Content}
	if provider, ok := ch.(MessageLengthProvider); ok {
		if limit := provider.MaxMessageLength(); limit > 0 {
			parts = splitMessage(msg.Content, limit)
		}
	}

	for i, part := range parts {
		out := msg
		out.Content = part
		if i > 0 {
			// Attachments ride on the first part only.
			out.Document = nil
			out.Location = nil
			out.PhotoURL = ""
			out.EditMessageID = ""
		}
		if err := ch.Send(ctx, out); err != nil {
			logger.ErrorCF("channels", "Send failed",
				map[string]any{"channel": msg.Channel, "chat_id": msg.ChatID, "error": err.Error()})
			return
		}
	}
}

// splitMessage splits content into rune-bounded chunks of at most limit,
// preferring to break at a newline.
func splitMessage(content string, limit int) []string {
	runes := []rune(content)
	if len(runes) <= limit {
		return []string{content}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
		if len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
