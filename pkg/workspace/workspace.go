// Package workspace wraps the Google Workspace APIs (Sheets, Drive,
// Calendar, Gmail) behind thin request/response facades used by the bot's
// command handlers. Every wrapper validates its identifying parameters,
// applies at most one default, issues exactly one remote call and returns the
// response payload unchanged. No retries, no caching.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrMissingSpreadsheetID = errors.New("spreadsheet id is required")
	ErrMissingRange         = errors.New("range is required")
	ErrMissingFileName      = errors.New("file name is required")
	ErrMissingMessageID     = errors.New("message id is required")
	ErrMissingEventFields   = errors.New("event summary, start and end are required")
	ErrMissingTitle         = errors.New("spreadsheet title is required")
)

var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveScope,
	calendar.CalendarScope,
	gmail.GmailReadonlyScope,
}

// Services bundles the authenticated Workspace API facades. A single
// service-account handshake at startup produces all four; a handshake
// failure aborts startup.
type Services struct {
	Sheets   *SheetsService
	Drive    *DriveService
	Calendar *CalendarService
	Gmail    *GmailService
}

// NewServices reads the service-account key file, performs the credential
// handshake and constructs the four API clients.
func NewServices(ctx context.Context, keyFile string) (*Services, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("reading service account key: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	client := conf.Client(ctx)

	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating drive client: %w", err)
	}
	calendarSvc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating calendar client: %w", err)
	}
	gmailSvc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating gmail client: %w", err)
	}

	return &Services{
		Sheets:   NewSheetsService(sheetsSvc),
		Drive:    NewDriveService(driveSvc),
		Calendar: NewCalendarService(calendarSvc),
		Gmail:    NewGmailService(gmailSvc),
	}, nil
}
