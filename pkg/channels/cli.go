package channels

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tinyland-inc/gofer/pkg/bus"
)

// CLIChannel is a local console transport for trying the bot without any
// chat-service credentials. Each input line becomes one inbound message in
// the "direct" chat.
type CLIChannel struct {
	*BaseChannel
	rl   *readline.Instance
	done chan struct{}
}

func NewCLIChannel(msgBus *bus.MessageBus) (*CLIChannel, error) {
	rl, err := readline.New("you> ")
	if err != nil {
		return nil, fmt.Errorf("initializing readline: %w", err)
	}
	return &CLIChannel{
		BaseChannel: NewBaseChannel("cli", msgBus, nil),
		rl:          rl,
		done:        make(chan struct{}),
	}, nil
}

func (c *CLIChannel) Start(_ context.Context) error {
	go c.readLoop()
	c.SetRunning(true)
	return nil
}

// Done is closed when the input stream ends (Ctrl+D or interrupt).
func (c *CLIChannel) Done() <-chan struct{} {
	return c.done
}

func (c *CLIChannel) Stop(_ context.Context) error {
	c.SetRunning(false)
	return c.rl.Close()
}

func (c *CLIChannel) readLoop() {
	defer close(c.done)
	for {
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.HandleMessage("", "local", "direct", line, nil)
	}
}

func (c *CLIChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	out := c.rl.Stdout()
	fmt.Fprintf(out, "gofer> %s\n", msg.Content)
	if msg.Document != nil {
		fmt.Fprintf(out, "gofer> [document: %s, %d bytes]\n", msg.Document.Name, len(msg.Document.Data))
	}
	if msg.Location != nil {
		fmt.Fprintf(out, "gofer> [location: %f,%f]\n", msg.Location.Latitude, msg.Location.Longitude)
	}
	return nil
}
