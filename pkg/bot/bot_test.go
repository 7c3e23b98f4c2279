package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
)

func newTestBot(t *testing.T) (*Bot, *bus.MessageBus, *dispatch.Router) {
	t.Helper()
	msgBus := bus.NewMessageBus()
	reg := dispatch.NewRegistry()
	b := New(config.DefaultConfig(), msgBus, reg, nil)
	b.RegisterAll()
	return b, msgBus, dispatch.NewRouter(reg)
}

func awaitReply(t *testing.T, msgBus *bus.MessageBus) bus.OutboundMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	out, ok := msgBus.SubscribeOutbound(ctx)
	require.True(t, ok, "expected an outbound reply")
	return out
}

func inbound(text string) bus.InboundMessage {
	return bus.InboundMessage{Channel: "test", SenderID: "u1", ChatID: "c1", Content: text}
}

func TestHelpListsEveryCommand(t *testing.T) {
	_, msgBus, router := newTestBot(t)

	require.True(t, router.Route(context.Background(), inbound("/help")))

	out := awaitReply(t, msgBus)
	assert.Equal(t, "test", out.Channel)
	assert.Equal(t, "c1", out.ChatID)
	for _, name := range []string{"/start", "/read", "/append", "/files", "/events", "/msg"} {
		assert.Contains(t, out.Content, name)
	}
}

func TestHelloTrigger(t *testing.T) {
	_, msgBus, router := newTestBot(t)

	require.True(t, router.Route(context.Background(), inbound("well HELLO there")))
	out := awaitReply(t, msgBus)
	assert.Contains(t, out.Content, "Hello")
}

func TestThanksTrigger(t *testing.T) {
	_, msgBus, router := newTestBot(t)

	require.True(t, router.Route(context.Background(), inbound("ok thank you!")))
	out := awaitReply(t, msgBus)
	assert.Equal(t, "Anytime!", out.Content)

	// "thankful" must not match the word-bounded pattern.
	assert.False(t, router.Route(context.Background(), inbound("feeling thankful")))
}

func TestUsageReplyOnMissingArgs(t *testing.T) {
	b, msgBus, _ := newTestBot(t)

	require.NoError(t, b.handleRead(context.Background(), inbound("/read"), nil))
	out := awaitReply(t, msgBus)
	assert.Contains(t, out.Content, "Usage: /read")

	require.NoError(t, b.handleAppend(context.Background(), inbound("/append"), []string{"A:C"}))
	out = awaitReply(t, msgBus)
	assert.Contains(t, out.Content, "Usage: /append")
}

func TestAddEventBadSpecRepliesUsage(t *testing.T) {
	b, msgBus, _ := newTestBot(t)

	err := b.handleAddEvent(context.Background(), inbound("/addevent"), []string{"only-a-title"})
	require.NoError(t, err)
	out := awaitReply(t, msgBus)
	assert.Contains(t, out.Content, "Usage: /addevent")
}
