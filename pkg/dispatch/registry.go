// Package dispatch implements the message routing core: an append-only
// registry of slash commands and free-text triggers, and a router that
// selects at most one handler per inbound message.
package dispatch

import (
	"context"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/logger"
)

// Handler is user-supplied logic invoked with the matched message. For
// command matches args holds the whitespace-split tokens after the command
// token; for trigger matches args is nil. A returned error is logged at the
// dispatch boundary; any user-visible reply on failure is the handler's own
// responsibility.
type Handler func(ctx context.Context, msg bus.InboundMessage, args []string) error

// Command describes one registered slash command. Name carries no leading
// slash and is unique within a Registry.
type Command struct {
	Name        string
	Description string
	Handler     Handler
}

// CommandInfo is the user-facing projection of a Command, used to build
// transport command menus.
type CommandInfo struct {
	Name        string
	Description string
}

// Registry holds the ordered command and trigger sequences. Registration is
// append-only and happens during bootstrap; after that the registry is
// read-only, so the dispatch path needs no locking.
type Registry struct {
	commands []Command
	byName   map[string]int
	triggers []Trigger
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// RegisterCommand appends cmd to the command sequence. Duplicate names are
// ignored with a warning: the first registration wins.
func (r *Registry) RegisterCommand(cmd Command) {
	if _, exists := r.byName[cmd.Name]; exists {
		logger.WarnCF("dispatch", "Duplicate command registration ignored",
			map[string]any{"command": cmd.Name})
		return
	}
	r.byName[cmd.Name] = len(r.commands)
	r.commands = append(r.commands, cmd)
}

// RegisterTrigger appends t to the trigger sequence. Trigger order is
// significant: the router tests triggers in registration order.
func (r *Registry) RegisterTrigger(t Trigger) {
	r.triggers = append(r.triggers, t)
}

// ListCommands returns a snapshot of the registered commands in registration
// order.
func (r *Registry) ListCommands() []CommandInfo {
	infos := make([]CommandInfo, len(r.commands))
	for i, cmd := range r.commands {
		infos[i] = CommandInfo{Name: cmd.Name, Description: cmd.Description}
	}
	return infos
}

func (r *Registry) command(name string) (Command, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Command{}, false
	}
	return r.commands[i], true
}
