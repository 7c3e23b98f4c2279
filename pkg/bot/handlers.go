package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/workspace"
)

const eventTimeLayout = "2006-01-02 15:04"

func (b *Bot) handleStart(ctx context.Context, msg bus.InboundMessage, _ []string) error {
	return b.reply(ctx, msg,
		"Hi! I relay commands to Google Workspace: spreadsheets, Drive, Calendar and Gmail.\n"+
			"Send /help for the command list.")
}

func (b *Bot) handleHelp(ctx context.Context, msg bus.InboundMessage, _ []string) error {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, cmd := range b.reg.ListCommands() {
		fmt.Fprintf(&sb, "/%s — %s\n", cmd.Name, cmd.Description)
	}
	return b.reply(ctx, msg, sb.String())
}

func (b *Bot) handleHello(ctx context.Context, msg bus.InboundMessage, _ []string) error {
	return b.reply(ctx, msg, "Hello! Send /help to see what I can do.")
}

func (b *Bot) handleThanks(ctx context.Context, msg bus.InboundMessage, _ []string) error {
	return b.reply(ctx, msg, "Anytime!")
}

func (b *Bot) handleSheet(ctx context.Context, msg bus.InboundMessage, _ []string) error {
	info, err := b.svc.Sheets.Metadata(ctx, b.cfg.Google.SpreadsheetID)
	if err != nil {
		return b.fail(ctx, msg, "Could not fetch spreadsheet info.", err)
	}
	return b.reply(ctx, msg, formatSheetInfo(info))
}

func (b *Bot) handleRead(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, msg, "Usage: /read A1:C5 [raw|formula]")
	}
	renderOption := workspace.RenderFormatted
	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "raw":
			renderOption = workspace.RenderRaw
		case "formula":
			renderOption = workspace.RenderFormula
		}
	}
	rows, err := b.svc.Sheets.ReadRange(ctx, b.cfg.Google.SpreadsheetID, args[0], renderOption)
	if err != nil {
		return b.fail(ctx, msg, "Could not read "+args[0]+".", err)
	}
	if len(rows) == 0 {
		return b.reply(ctx, msg, "Range "+args[0]+" is empty.")
	}
	return b.reply(ctx, msg, formatRows(rows))
}

func (b *Bot) handleObjects(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, msg, "Usage: /objects A1:C5")
	}
	records, err := b.svc.Sheets.ReadAsObjects(ctx, b.cfg.Google.SpreadsheetID, args[0])
	if err != nil {
		return b.fail(ctx, msg, "Could not read "+args[0]+".", err)
	}
	if len(records) == 0 {
		return b.reply(ctx, msg, "No data rows in "+args[0]+".")
	}
	return b.reply(ctx, msg, formatObjects(records))
}

func (b *Bot) handleAppend(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 2 {
		return b.reply(ctx, msg, "Usage: /append A:C value 1 | value 2 | value 3")
	}
	row := toAnyRow(parsePipeList(strings.Join(args[1:], " ")))
	resp, err := b.svc.Sheets.AppendRow(ctx, b.cfg.Google.SpreadsheetID, args[0], row, "")
	if err != nil {
		return b.fail(ctx, msg, "Could not append to "+args[0]+".", err)
	}
	updated := ""
	if resp.Updates != nil {
		updated = " at " + resp.Updates.UpdatedRange
	}
	return b.reply(ctx, msg, fmt.Sprintf("Appended %d values%s.", len(row), updated))
}

func (b *Bot) handleUpdate(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 2 {
		return b.reply(ctx, msg, "Usage: /update A1:C1 value 1 | value 2 | value 3")
	}
	row := toAnyRow(parsePipeList(strings.Join(args[1:], " ")))
	resp, err := b.svc.Sheets.UpdateRange(ctx, b.cfg.Google.SpreadsheetID, args[0], [][]any{row}, "")
	if err != nil {
		return b.fail(ctx, msg, "Could not update "+args[0]+".", err)
	}
	return b.reply(ctx, msg, fmt.Sprintf("Updated %d cells in %s.", resp.UpdatedCells, args[0]))
}

func (b *Bot) handleClear(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, msg, "Usage: /clear A1:C5")
	}
	if err := b.svc.Sheets.ClearRange(ctx, b.cfg.Google.SpreadsheetID, args[0]); err != nil {
		return b.fail(ctx, msg, "Could not clear "+args[0]+".", err)
	}
	return b.reply(ctx, msg, "Cleared "+args[0]+".")
}

func (b *Bot) handleNewSheet(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, msg, "Usage: /newsheet Title | Tab1, Tab2")
	}
	segments := parsePipeList(strings.Join(args, " "))
	title := segments[0]
	var sheetNames []string
	if len(segments) > 1 {
		for _, name := range strings.Split(segments[1], ",") {
			if name = strings.TrimSpace(name); name != "" {
				sheetNames = append(sheetNames, name)
			}
		}
	}
	created, err := b.svc.Sheets.Create(ctx, title, sheetNames)
	if err != nil {
		return b.fail(ctx, msg, "Could not create the spreadsheet.", err)
	}
	return b.reply(ctx, msg, fmt.Sprintf("Created %q.\n%s", title, created.SpreadsheetUrl))
}

func (b *Bot) handleFiles(ctx context.Context, msg bus.InboundMessage, args []string) error {
	query := ""
	if len(args) > 0 {
		name := strings.ReplaceAll(strings.Join(args, " "), "'", `\'`)
		query = fmt.Sprintf("name contains '%s'", name)
	}
	list, err := b.svc.Drive.ListFiles(ctx, query, 0, "")
	if err != nil {
		return b.fail(ctx, msg, "Could not list files.", err)
	}
	if len(list.Files) == 0 {
		return b.reply(ctx, msg, "No files found.")
	}
	return b.reply(ctx, msg, formatFileList(list))
}

func (b *Bot) handleMkdir(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, msg, "Usage: /mkdir folder name")
	}
	name := strings.Join(args, " ")
	folder, err := b.svc.Drive.CreateFolder(ctx, name, "")
	if err != nil {
		return b.fail(ctx, msg, "Could not create the folder.", err)
	}
	return b.reply(ctx, msg, fmt.Sprintf("Created folder %q (id %s).", folder.Name, folder.Id))
}

func (b *Bot) handleNote(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 2 {
		return b.reply(ctx, msg, "Usage: /note name text of the note")
	}
	name := args[0] + ".txt"
	text := strings.Join(args[1:], " ")
	file, err := b.svc.Drive.Upload(ctx, name, "text/plain", strings.NewReader(text))
	if err != nil {
		return b.fail(ctx, msg, "Could not save the note.", err)
	}
	reply := fmt.Sprintf("Saved %q.", file.Name)
	if file.WebViewLink != "" {
		reply += "\n" + file.WebViewLink
	}
	return b.reply(ctx, msg, reply)
}

func (b *Bot) handleEvents(ctx context.Context, msg bus.InboundMessage, args []string) error {
	var maxResults int64
	if len(args) > 0 {
		if n, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			maxResults = n
		}
	}
	now := time.Now()
	events, err := b.svc.Calendar.ListEvents(ctx, b.cfg.Google.CalendarID, now, now.AddDate(0, 0, 7), maxResults)
	if err != nil {
		return b.fail(ctx, msg, "Could not list events.", err)
	}
	if len(events.Items) == 0 {
		return b.reply(ctx, msg, "No upcoming events in the next 7 days.")
	}
	return b.reply(ctx, msg, "Upcoming events:\n"+formatEvents(events))
}

// handleAgenda answers the "agenda" free-text trigger with today's events.
func (b *Bot) handleAgenda(ctx context.Context, msg bus.InboundMessage, _ []string) error {
	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	events, err := b.svc.Calendar.ListEvents(ctx, b.cfg.Google.CalendarID, now, endOfDay, 0)
	if err != nil {
		return b.fail(ctx, msg, "Could not fetch today's agenda.", err)
	}
	if len(events.Items) == 0 {
		return b.reply(ctx, msg, "Nothing else on the agenda today.")
	}
	return b.reply(ctx, msg, "Today:\n"+formatEvents(events))
}

func (b *Bot) handleAddEvent(ctx context.Context, msg bus.InboundMessage, args []string) error {
	req, err := parseEventSpec(strings.Join(args, " "))
	if err != nil {
		return b.reply(ctx, msg, err.Error()+"\nUsage: /addevent Title | 2026-08-24 15:00 | 2026-08-24 16:00 | place")
	}
	event, err := b.svc.Calendar.CreateEvent(ctx, b.cfg.Google.CalendarID, req)
	if err != nil {
		return b.fail(ctx, msg, "Could not create the event.", err)
	}
	return b.reply(ctx, msg, fmt.Sprintf("Created %q on %s.", event.Summary, req.Start.Format(eventTimeLayout)))
}

func (b *Bot) handleMail(ctx context.Context, msg bus.InboundMessage, args []string) error {
	query := strings.Join(args, " ")
	list, err := b.svc.Gmail.ListMessages(ctx, query, 0)
	if err != nil {
		return b.fail(ctx, msg, "Could not list mail.", err)
	}
	if len(list.Messages) == 0 {
		return b.reply(ctx, msg, "No matching messages.")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d message(s); use /msg <id> to read one:\n", len(list.Messages))
	for _, m := range list.Messages {
		sb.WriteString(m.Id + "\n")
	}
	return b.reply(ctx, msg, sb.String())
}

func (b *Bot) handleMsg(ctx context.Context, msg bus.InboundMessage, args []string) error {
	if len(args) < 1 {
		return b.reply(ctx, msg, "Usage: /msg id")
	}
	message, err := b.svc.Gmail.GetMessage(ctx, args[0])
	if err != nil {
		return b.fail(ctx, msg, "Could not fetch message "+args[0]+".", err)
	}
	return b.reply(ctx, msg, formatMailMessage(message))
}
