package workspace

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"
)

const (
	// gmailUser addresses the authenticated mailbox.
	gmailUser = "me"

	defaultMaxMessages = 10
)

// GmailService exposes the read-only mail operations used by command
// handlers.
type GmailService struct {
	svc *gmail.Service
}

func NewGmailService(svc *gmail.Service) *GmailService {
	return &GmailService{svc: svc}
}

// ListMessages lists message IDs matching the Gmail search query. A
// maxResults of zero or less defaults to 10.
func (g *GmailService) ListMessages(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxMessages
	}
	call := g.svc.Users.Messages.List(gmailUser).MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return resp, nil
}

// GetMessage fetches a single message by ID, including headers and body.
func (g *GmailService) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	if messageID == "" {
		return nil, ErrMissingMessageID
	}
	resp, err := g.svc.Users.Messages.Get(gmailUser, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching message %s: %w", messageID, err)
	}
	return resp, nil
}
