package bot

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"

	"github.com/tinyland-inc/gofer/pkg/workspace"
)

// parsePipeList splits s on "|" and trims each segment. Empty segments are
// dropped.
func parsePipeList(s string) []string {
	var out []string
	for _, seg := range strings.Split(s, "|") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func toAnyRow(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

// parseEventSpec parses "Title | start | end [| location]" with times in
// local "2006-01-02 15:04" form.
func parseEventSpec(s string) (workspace.EventRequest, error) {
	segments := parsePipeList(s)
	if len(segments) < 3 {
		return workspace.EventRequest{}, errors.New("need a title, a start and an end")
	}
	start, err := time.ParseInLocation(eventTimeLayout, segments[1], time.Local)
	if err != nil {
		return workspace.EventRequest{}, fmt.Errorf("bad start time %q", segments[1])
	}
	end, err := time.ParseInLocation(eventTimeLayout, segments[2], time.Local)
	if err != nil {
		return workspace.EventRequest{}, fmt.Errorf("bad end time %q", segments[2])
	}
	if !end.After(start) {
		return workspace.EventRequest{}, errors.New("end must be after start")
	}
	req := workspace.EventRequest{Summary: segments[0], Start: start, End: end}
	if len(segments) > 3 {
		req.Location = segments[3]
	}
	return req, nil
}

func formatRows(rows [][]any) string {
	var sb strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatObjects(records []map[string]any) string {
	var sb strings.Builder
	for i, record := range records {
		if i > 0 {
			sb.WriteString("—\n")
		}
		keys := make([]string, 0, len(record))
		for k := range record {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := record[k]
			if v == nil {
				v = ""
			}
			fmt.Fprintf(&sb, "%s: %v\n", k, v)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatSheetInfo(info *sheets.Spreadsheet) string {
	var sb strings.Builder
	if info.Properties != nil {
		fmt.Fprintf(&sb, "%s\n", info.Properties.Title)
	}
	for _, sheet := range info.Sheets {
		if sheet.Properties != nil {
			fmt.Fprintf(&sb, "• %s\n", sheet.Properties.Title)
		}
	}
	sb.WriteString(info.SpreadsheetUrl)
	return strings.TrimRight(sb.String(), "\n")
}

func formatFileList(list *drive.FileList) string {
	var sb strings.Builder
	for _, file := range list.Files {
		fmt.Fprintf(&sb, "• %s", file.Name)
		if file.MimeType == "application/vnd.google-apps.folder" {
			sb.WriteString("/")
		}
		if file.ModifiedTime != "" {
			if t, err := time.Parse(time.RFC3339, file.ModifiedTime); err == nil {
				fmt.Fprintf(&sb, "  (%s)", t.Format("2006-01-02"))
			}
		}
		sb.WriteByte('\n')
	}
	if list.NextPageToken != "" {
		sb.WriteString("…more available\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatEvents(events *calendar.Events) string {
	var sb strings.Builder
	for _, event := range events.Items {
		sb.WriteString("• ")
		if event.Start != nil {
			switch {
			case event.Start.DateTime != "":
				if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
					sb.WriteString(t.Format("Mon 02 Jan 15:04") + " ")
				}
			case event.Start.Date != "":
				sb.WriteString(event.Start.Date + " (all day) ")
			}
		}
		sb.WriteString(event.Summary)
		if event.Location != "" {
			fmt.Fprintf(&sb, " @ %s", event.Location)
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatMailMessage(message *gmail.Message) string {
	var sb strings.Builder
	for _, name := range []string{"From", "Subject", "Date"} {
		if v := mailHeader(message, name); v != "" {
			fmt.Fprintf(&sb, "%s: %s\n", name, v)
		}
	}
	if message.Snippet != "" {
		sb.WriteString("\n" + message.Snippet)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func mailHeader(message *gmail.Message, name string) string {
	if message.Payload == nil {
		return ""
	}
	for _, h := range message.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
