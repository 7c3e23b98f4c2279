package dispatch

import (
	"context"
	"strings"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/logger"
)

// Router decides which single handler, if any, receives an inbound message.
//
// Command matching uses exact-token semantics: the first whitespace-delimited
// token must equal "/<name>" (an optional "@botname" suffix is stripped).
// A longer command name is therefore never shadowed by a shorter prefix:
// "/addword x" matches the command "addword", not "add".
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// Route selects and invokes at most one handler for msg, returning whether a
// handler was invoked. Invocation is fire-and-forget: the handler runs on its
// own goroutine and Route does not await its completion. A message with no
// text body, or one matching neither a command nor a trigger, is dropped.
func (r *Router) Route(ctx context.Context, msg bus.InboundMessage) bool {
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return false
	}

	if name, args, ok := splitCommand(text); ok {
		if cmd, found := r.reg.command(name); found {
			r.invoke(ctx, cmd.Handler, msg, args, "command /"+name)
			return true
		}
	}

	for _, t := range r.reg.triggers {
		if t.Pattern.Matches(text) {
			r.invoke(ctx, t.Handler, msg, nil, "trigger")
			return true
		}
	}

	return false
}

func (r *Router) invoke(ctx context.Context, h Handler, msg bus.InboundMessage, args []string, origin string) {
	go func() {
		if err := h(ctx, msg, args); err != nil {
			logger.ErrorCF("dispatch", "Handler failed", map[string]any{
				"origin":  origin,
				"channel": msg.Channel,
				"chat_id": msg.ChatID,
				"error":   err.Error(),
			})
		}
	}()
}

// Consume routes inbound messages from the bus until ctx is canceled or the
// bus closes. Match decisions are made one message at a time on this
// goroutine; only handler execution is asynchronous.
func Consume(ctx context.Context, msgBus *bus.MessageBus, router *Router) {
	for {
		msg, ok := msgBus.ConsumeInbound(ctx)
		if !ok {
			return
		}
		if !router.Route(ctx, msg) {
			logger.DebugCF("dispatch", "No handler matched", map[string]any{
				"channel": msg.Channel,
				"chat_id": msg.ChatID,
			})
		}
	}
}

// splitCommand parses a command token of the form "/<name>[@bot] [args...]".
func splitCommand(text string) (name string, args []string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}
	name = strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", nil, false
	}
	return name, fields[1:], true
}
