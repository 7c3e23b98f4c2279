package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
)

func TestParsePipeList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, parsePipeList("a | b c |d"))
	assert.Equal(t, []string{"one"}, parsePipeList("one"))
	assert.Nil(t, parsePipeList("  |  | "))
}

func TestParseEventSpec(t *testing.T) {
	req, err := parseEventSpec("Standup | 2026-08-24 09:00 | 2026-08-24 09:15 | Room 4")
	require.NoError(t, err)
	assert.Equal(t, "Standup", req.Summary)
	assert.Equal(t, "Room 4", req.Location)
	assert.Equal(t, 15*time.Minute, req.End.Sub(req.Start))

	_, err = parseEventSpec("Standup | 2026-08-24 09:00")
	assert.Error(t, err)

	_, err = parseEventSpec("Standup | not-a-time | 2026-08-24 09:15")
	assert.Error(t, err)

	_, err = parseEventSpec("Standup | 2026-08-24 09:15 | 2026-08-24 09:00")
	assert.Error(t, err, "end before start")
}

func TestFormatRows(t *testing.T) {
	got := formatRows([][]any{{"name", "qty"}, {"bolt", 4}})
	assert.Equal(t, "name | qty\nbolt | 4", got)
}

func TestFormatObjects(t *testing.T) {
	got := formatObjects([]map[string]any{
		{"name": "bolt", "qty": "4"},
		{"name": "nut", "qty": nil},
	})
	assert.Equal(t, "name: bolt\nqty: 4\n—\nname: nut\nqty: ", got)
}

func TestFormatFileList(t *testing.T) {
	list := &drive.FileList{
		Files: []*drive.File{
			{Name: "docs", MimeType: "application/vnd.google-apps.folder"},
			{Name: "notes.txt", ModifiedTime: "2026-08-20T10:00:00Z"},
		},
		NextPageToken: "tok",
	}
	got := formatFileList(list)
	assert.Contains(t, got, "• docs/")
	assert.Contains(t, got, "• notes.txt  (2026-08-20)")
	assert.Contains(t, got, "…more available")
}

func TestFormatEvents(t *testing.T) {
	events := &calendar.Events{Items: []*calendar.Event{
		{
			Summary:  "Standup",
			Location: "Room 4",
			Start:    &calendar.EventDateTime{DateTime: "2026-08-24T09:00:00Z"},
		},
		{
			Summary: "Offsite",
			Start:   &calendar.EventDateTime{Date: "2026-08-25"},
		},
	}}
	got := formatEvents(events)
	assert.Contains(t, got, "• Mon 24 Aug 09:00 Standup @ Room 4")
	assert.Contains(t, got, "• 2026-08-25 (all day) Offsite")
}

func TestFormatMailMessage(t *testing.T) {
	message := &gmail.Message{
		Snippet: "See you at 3pm",
		Payload: &gmail.MessagePart{Headers: []*gmail.MessagePartHeader{
			{Name: "From", Value: "alice@example.com"},
			{Name: "Subject", Value: "Meeting"},
		}},
	}
	got := formatMailMessage(message)
	assert.Equal(t, "From: alice@example.com\nSubject: Meeting\n\nSee you at 3pm", got)
}
