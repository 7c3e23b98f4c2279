// Package digest posts a scheduled agenda summary: on each due tick of a
// cron expression it fetches today's calendar events and publishes them to a
// configured channel/chat.
package digest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/adhocore/gronx"
	"google.golang.org/api/calendar/v3"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/workspace"
)

type Service struct {
	cfg  config.DigestConfig
	cal  *workspace.CalendarService
	bus  *bus.MessageBus
	cron *gronx.Gronx

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func NewService(cfg config.DigestConfig, cal *workspace.CalendarService, msgBus *bus.MessageBus) *Service {
	return &Service{
		cfg:  cfg,
		cal:  cal,
		bus:  msgBus,
		cron: gronx.New(),
	}
}

// Start validates the schedule and begins the minute tick loop. Disabled
// service starts as a no-op.
func (s *Service) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	if !s.cron.IsValid(s.cfg.Schedule) {
		return fmt.Errorf("invalid digest schedule %q", s.cfg.Schedule)
	}
	if s.cfg.ChatID == "" || s.cfg.Channel == "" {
		return fmt.Errorf("digest requires channel and chat_id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.stop = make(chan struct{})
	s.running = true
	go s.loop(s.stop)
	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stop)
	s.running = false
}

func (s *Service) loop(stop chan struct{}) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	lastFired := ""
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			minute := now.Format("2006-01-02 15:04")
			if minute == lastFired {
				continue
			}
			due, err := s.cron.IsDue(s.cfg.Schedule, now)
			if err != nil || !due {
				continue
			}
			lastFired = minute
			s.publish(context.Background(), now)
		}
	}
}

func (s *Service) publish(ctx context.Context, now time.Time) {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	events, err := s.cal.ListEvents(ctx, "", now, endOfDay, 0)

	var content string
	switch {
	case err != nil:
		content = "Agenda digest failed: " + err.Error()
	case len(events.Items) == 0:
		content = "Agenda: no events today."
	default:
		content = "Agenda for today:\n" + FormatDigest(events.Items)
	}

	s.bus.PublishOutbound(ctx, bus.OutboundMessage{
		Channel: s.cfg.Channel,
		ChatID:  s.cfg.ChatID,
		Content: content,
	})
}

// FormatDigest renders one line per event.
func FormatDigest(items []*calendar.Event) string {
	var sb strings.Builder
	for _, event := range items {
		sb.WriteString("• ")
		if event.Start != nil {
			switch {
			case event.Start.DateTime != "":
				if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
					sb.WriteString(t.Format("15:04") + " ")
				}
			case event.Start.Date != "":
				sb.WriteString("(all day) ")
			}
		}
		sb.WriteString(event.Summary)
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}
