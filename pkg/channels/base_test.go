package channels

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyland-inc/gofer/pkg/bus"
)

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name      string
		allowList []string
		senderID  string
		want      bool
	}{
		{"empty list allows everyone", nil, "12345", true},
		{"plain id match", []string{"12345"}, "12345", true},
		{"plain id mismatch", []string{"12345"}, "99999", false},
		{"compound sender, id in list", []string{"12345"}, "12345|alice", true},
		{"compound sender, username in list", []string{"alice"}, "12345|alice", true},
		{"at-prefixed username", []string{"@alice"}, "12345|alice", true},
		{"compound entry, plain sender id", []string{"12345|alice"}, "12345", true},
		{"compound entry, compound sender", []string{"12345|alice"}, "12345|alice", true},
		{"no overlap", []string{"777|bob"}, "12345|alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := NewBaseChannel("test", bus.NewMessageBus(), tt.allowList)
			assert.Equal(t, tt.want, ch.IsAllowed(tt.senderID))
		})
	}
}

func TestHandleMessage(t *testing.T) {
	msgBus := bus.NewMessageBus()
	ch := NewBaseChannel("test", msgBus, []string{"alice"})

	ch.HandleMessage("m-1", "12345|alice", "chat-1", "hello", map[string]string{"k": "v"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, ok := msgBus.ConsumeInbound(ctx)
	require.True(t, ok)
	assert.Equal(t, "test", msg.Channel)
	assert.Equal(t, "m-1", msg.MessageID)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "v", msg.Metadata["k"])
}

func TestHandleMessage_GeneratesMessageID(t *testing.T) {
	msgBus := bus.NewMessageBus()
	ch := NewBaseChannel("test", msgBus, nil)

	ch.HandleMessage("", "local", "direct", "hi", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	msg, ok := msgBus.ConsumeInbound(ctx)
	require.True(t, ok)
	assert.NotEmpty(t, msg.MessageID)
}

func TestHandleMessage_BlockedSenderPublishesNothing(t *testing.T) {
	msgBus := bus.NewMessageBus()
	ch := NewBaseChannel("test", msgBus, []string{"alice"})

	ch.HandleMessage("m-1", "99999|mallory", "chat-1", "hello", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, ok := msgBus.ConsumeInbound(ctx)
	assert.False(t, ok)
}

func TestSplitMessage(t *testing.T) {
	t.Run("short content untouched", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, splitMessage("hello", 100))
	})

	t.Run("breaks at newline", func(t *testing.T) {
		content := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
		parts := splitMessage(content, 100)
		require.Len(t, parts, 2)
		assert.Equal(t, strings.Repeat("a", 60), parts[0])
		assert.Equal(t, strings.Repeat("b", 60), parts[1])
	})

	t.Run("hard split without newline", func(t *testing.T) {
		content := strings.Repeat("x", 250)
		parts := splitMessage(content, 100)
		require.Len(t, parts, 3)
		for _, p := range parts {
			assert.LessOrEqual(t, len([]rune(p)), 100)
		}
		assert.Equal(t, content, strings.Join(parts, ""))
	})

	t.Run("rune boundaries respected", func(t *testing.T) {
		content := strings.Repeat("é", 150)
		parts := splitMessage(content, 100)
		require.Len(t, parts, 2)
		assert.Equal(t, content, strings.Join(parts, ""))
	})
}
