package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
)

func TestStart_DisabledIsNoOp(t *testing.T) {
	s := NewService(config.DigestConfig{Enabled: false}, nil, bus.NewMessageBus())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewService(config.DigestConfig{
		Enabled:  true,
		Schedule: "not a cron",
		Channel:  "telegram",
		ChatID:   "42",
	}, nil, bus.NewMessageBus())
	assert.Error(t, s.Start())
}

func TestStart_RequiresTarget(t *testing.T) {
	s := NewService(config.DigestConfig{
		Enabled:  true,
		Schedule: "0 8 * * *",
	}, nil, bus.NewMessageBus())
	assert.Error(t, s.Start())
}

func TestFormatDigest(t *testing.T) {
	items := []*calendar.Event{
		{
			Summary: "Standup",
			Start:   &calendar.EventDateTime{DateTime: "2026-08-24T09:00:00Z"},
		},
		{
			Summary: "Offsite",
			Start:   &calendar.EventDateTime{Date: "2026-08-24"},
		},
		{Summary: "No start"},
	}

	got := FormatDigest(items)
	assert.Equal(t, "• 09:00 Standup\n• (all day) Offsite\n• No start", got)
}
