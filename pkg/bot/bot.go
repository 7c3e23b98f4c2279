// Package bot wires the command and trigger handlers: each handler validates
// its arguments, calls one Workspace facade operation and publishes a
// formatted text reply. Handler failures are reported to the chat user here;
// the router only logs them.
package bot

import (
	"context"
	"regexp"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
	"github.com/tinyland-inc/gofer/pkg/workspace"
)

var thanksPattern = regexp.MustCompile(`(?i)\bthank(s\b|\s+you\b)`)

type Bot struct {
	cfg *config.Config
	bus *bus.MessageBus
	reg *dispatch.Registry
	svc *workspace.Services
}

func New(cfg *config.Config, msgBus *bus.MessageBus, reg *dispatch.Registry, svc *workspace.Services) *Bot {
	return &Bot{cfg: cfg, bus: msgBus, reg: reg, svc: svc}
}

// RegisterAll registers every command and trigger. Registration order is
// significant: it defines the command-menu order and the trigger precedence.
func (b *Bot) RegisterAll() {
	commands := []dispatch.Command{
		{Name: "start", Description: "Introduce the bot", Handler: b.handleStart},
		{Name: "help", Description: "Show the command menu", Handler: b.handleHelp},
		{Name: "sheet", Description: "Show spreadsheet info", Handler: b.handleSheet},
		{Name: "read", Description: "Read a range: /read A1:C5 [raw|formula]", Handler: b.handleRead},
		{Name: "objects", Description: "Read a table as records: /objects A1:C5", Handler: b.handleObjects},
		{Name: "append", Description: "Append a row: /append A:C v1 | v2 | v3", Handler: b.handleAppend},
		{Name: "update", Description: "Overwrite a row: /update A1:C1 v1 | v2 | v3", Handler: b.handleUpdate},
		{Name: "clear", Description: "Clear a range: /clear A1:C5", Handler: b.handleClear},
		{Name: "newsheet", Description: "Create a spreadsheet: /newsheet Title | Tab1, Tab2", Handler: b.handleNewSheet},
		{Name: "files", Description: "List Drive files: /files [name]", Handler: b.handleFiles},
		{Name: "mkdir", Description: "Create a Drive folder: /mkdir name", Handler: b.handleMkdir},
		{Name: "note", Description: "Save a text note to Drive: /note name text", Handler: b.handleNote},
		{Name: "events", Description: "Upcoming calendar events: /events [count]", Handler: b.handleEvents},
		{Name: "addevent", Description: "Create an event: /addevent Title | 2026-08-24 15:00 | 2026-08-24 16:00 | place", Handler: b.handleAddEvent},
		{Name: "mail", Description: "List mail: /mail [query]", Handler: b.handleMail},
		{Name: "msg", Description: "Show one mail message: /msg id", Handler: b.handleMsg},
	}
	for _, cmd := range commands {
		b.reg.RegisterCommand(cmd)
	}

	b.reg.RegisterTrigger(dispatch.Trigger{
		Pattern: dispatch.LiteralPattern("hello"),
		Handler: b.handleHello,
	})
	b.reg.RegisterTrigger(dispatch.Trigger{
		Pattern: dispatch.NewRegexpPattern(thanksPattern),
		Handler: b.handleThanks,
	})
	b.reg.RegisterTrigger(dispatch.Trigger{
		Pattern: dispatch.LiteralPattern("agenda"),
		Handler: b.handleAgenda,
	})
}

// reply publishes a text response to the chat the message came from.
func (b *Bot) reply(ctx context.Context, msg bus.InboundMessage, text string) error {
	return b.bus.PublishOutbound(ctx, bus.OutboundMessage{
		Channel: msg.Channel,
		ChatID:  msg.ChatID,
		Content: text,
	})
}

// fail tells the user the operation failed and surfaces err to the dispatch
// boundary for logging.
func (b *Bot) fail(ctx context.Context, msg bus.InboundMessage, userText string, err error) error {
	b.reply(ctx, msg, "⚠ "+userText)
	return err
}
