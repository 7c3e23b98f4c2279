package workspace

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

const (
	// DefaultCalendarID is used when the caller passes no calendar ID.
	DefaultCalendarID = "primary"

	defaultMaxEvents = 10
)

// EventRequest describes a calendar event to create.
type EventRequest struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// CalendarService exposes the calendar operations used by command handlers.
type CalendarService struct {
	svc *calendar.Service
}

func NewCalendarService(svc *calendar.Service) *CalendarService {
	return &CalendarService{svc: svc}
}

// ListEvents lists upcoming events within the [from, to] window, ordered by
// start time. Zero times leave the window open on that side. An empty
// calendarID defaults to the primary calendar; maxResults of zero or less
// defaults to 10.
func (c *CalendarService) ListEvents(ctx context.Context, calendarID string, from, to time.Time, maxResults int64) (*calendar.Events, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	if maxResults <= 0 {
		maxResults = defaultMaxEvents
	}
	call := c.svc.Events.List(calendarID).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime")
	if !from.IsZero() {
		call = call.TimeMin(from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		call = call.TimeMax(to.Format(time.RFC3339))
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return resp, nil
}

// CreateEvent creates one event. Summary, start and end are required; an
// empty calendarID defaults to the primary calendar.
func (c *CalendarService) CreateEvent(ctx context.Context, calendarID string, req EventRequest) (*calendar.Event, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	if req.Summary == "" || req.Start.IsZero() || req.End.IsZero() {
		return nil, ErrMissingEventFields
	}
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Start:       &calendar.EventDateTime{DateTime: req.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: req.End.Format(time.RFC3339)},
	}
	resp, err := c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	return resp, nil
}
