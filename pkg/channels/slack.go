package channels

import (
	"bytes"
	"context"
	"fmt"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/logger"
)

const slackMaxMessageLength = 4000

// SlackChannel connects over Socket Mode, so no public webhook endpoint is
// needed.
type SlackChannel struct {
	*BaseChannel
	api    *slack.Client
	socket *socketmode.Client
	cancel context.CancelFunc
}

func NewSlackChannel(cfg config.SlackConfig, msgBus *bus.MessageBus) (*SlackChannel, error) {
	if cfg.BotToken == "" || cfg.AppToken == "" {
		return nil, fmt.Errorf("slack channel requires bot_token and app_token")
	}
	api := slack.New(cfg.BotToken, slack.OptionAppLevelToken(cfg.AppToken))

	return &SlackChannel{
		BaseChannel: NewBaseChannel("slack", msgBus, cfg.AllowFrom,
			WithMaxMessageLength(slackMaxMessageLength)),
		api:    api,
		socket: socketmode.New(api),
	}, nil
}

func (s *SlackChannel) Start(ctx context.Context) error {
	identity, err := s.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test: %w", err)
	}
	logger.InfoCF("slack", "Connected", map[string]any{"user": identity.User})

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go func() {
		if err := s.socket.RunContext(runCtx); err != nil && runCtx.Err() == nil {
			logger.ErrorCF("slack", "Socket mode stopped", map[string]any{"error": err.Error()})
		}
	}()
	go s.handleEvents(runCtx)

	s.SetRunning(true)
	return nil
}

func (s *SlackChannel) Stop(_ context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	s.SetRunning(false)
	return nil
}

func (s *SlackChannel) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-s.socket.Events:
			if !ok {
				return
			}
			if evt.Type != socketmode.EventTypeEventsAPI {
				continue
			}
			apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok {
				continue
			}
			s.socket.Ack(*evt.Request)

			if apiEvent.Type != slackevents.CallbackEvent {
				continue
			}
			switch ev := apiEvent.InnerEvent.Data.(type) {
			case *slackevents.MessageEvent:
				// Ignore bot echoes and message edits/deletions.
				if ev.BotID != "" || ev.SubType != "" {
					continue
				}
				s.HandleMessage(ev.TimeStamp, ev.User, ev.Channel, ev.Text, nil)
			}
		}
	}
}

func (s *SlackChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	switch {
	case msg.EditMessageID != "":
		_, _, _, err := s.api.UpdateMessageContext(ctx, msg.ChatID, msg.EditMessageID,
			slack.MsgOptionText(msg.Content, false))
		return err

	case msg.Document != nil:
		_, err := s.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
			Channel:        msg.ChatID,
			Filename:       msg.Document.Name,
			FileSize:       len(msg.Document.Data),
			Reader:         bytes.NewReader(msg.Document.Data),
			InitialComment: msg.Content,
		})
		return err

	case msg.Location != nil:
		// Slack has no native location message; send a maps link.
		text := fmt.Sprintf("%s\nhttps://maps.google.com/?q=%f,%f",
			msg.Content, msg.Location.Latitude, msg.Location.Longitude)
		_, _, err := s.api.PostMessageContext(ctx, msg.ChatID, slack.MsgOptionText(text, false))
		return err

	case msg.PhotoURL != "":
		text := msg.Content
		if text != "" {
			text += "\n"
		}
		text += msg.PhotoURL
		_, _, err := s.api.PostMessageContext(ctx, msg.ChatID, slack.MsgOptionText(text, false))
		return err

	default:
		_, _, err := s.api.PostMessageContext(ctx, msg.ChatID, slack.MsgOptionText(msg.Content, false))
		return err
	}
}
