package bus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishConsumeInbound(t *testing.T) {
	mb := NewMessageBus()
	ctx := context.Background()

	require.NoError(t, mb.PublishInbound(ctx, InboundMessage{Channel: "test", Content: "one"}))
	require.NoError(t, mb.PublishInbound(ctx, InboundMessage{Channel: "test", Content: "two"}))

	msg, ok := mb.ConsumeInbound(ctx)
	require.True(t, ok)
	assert.Equal(t, "one", msg.Content)

	msg, ok = mb.ConsumeInbound(ctx)
	require.True(t, ok)
	assert.Equal(t, "two", msg.Content)
}

func TestPublishSubscribeOutbound(t *testing.T) {
	mb := NewMessageBus()
	ctx := context.Background()

	require.NoError(t, mb.PublishOutbound(ctx, OutboundMessage{Channel: "test", Content: "reply"}))

	msg, ok := mb.SubscribeOutbound(ctx)
	require.True(t, ok)
	assert.Equal(t, "reply", msg.Content)
}

func TestClosedBusRejectsPublish(t *testing.T) {
	mb := NewMessageBus()
	mb.Close()

	err := mb.PublishInbound(context.Background(), InboundMessage{})
	assert.ErrorIs(t, err, ErrBusClosed)
	err = mb.PublishOutbound(context.Background(), OutboundMessage{})
	assert.ErrorIs(t, err, ErrBusClosed)
}

func TestCloseUnblocksConsumers(t *testing.T) {
	mb := NewMessageBus()

	done := make(chan bool, 1)
	go func() {
		_, ok := mb.ConsumeInbound(context.Background())
		done <- ok
	}()

	mb.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("consumer did not unblock on close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	mb := NewMessageBus()
	mb.Close()
	mb.Close()
}

func TestConsumeRespectsContext(t *testing.T) {
	mb := NewMessageBus()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok := mb.ConsumeInbound(ctx)
	assert.False(t, ok)
}
