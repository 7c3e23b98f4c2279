package channels

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/dispatch"
	"github.com/tinyland-inc/gofer/pkg/logger"
)

const telegramMaxMessageLength = 4096

// TelegramChannel receives updates via long polling and sends replies,
// photos, documents and locations. It also publishes the command menu
// through the Bot API's SetMyCommands endpoint.
type TelegramChannel struct {
	*BaseChannel
	bot    *telego.Bot
	cancel context.CancelFunc
}

func NewTelegramChannel(cfg config.TelegramConfig, msgBus *bus.MessageBus) (*TelegramChannel, error) {
	bot, err := telego.NewBot(cfg.Token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &TelegramChannel{
		BaseChannel: NewBaseChannel("telegram", msgBus, cfg.AllowFrom,
			WithMaxMessageLength(telegramMaxMessageLength)),
		bot: bot,
	}, nil
}

func (t *TelegramChannel) Start(ctx context.Context) error {
	me, err := t.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("fetching bot identity: %w", err)
	}
	logger.InfoCF("telegram", "Connected", map[string]any{"username": me.Username})

	pollCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	updates, err := t.bot.UpdatesViaLongPolling(pollCtx, nil)
	if err != nil {
		cancel()
		return fmt.Errorf("starting long polling: %w", err)
	}

	go t.handleUpdates(pollCtx, updates)
	t.SetRunning(true)
	return nil
}

func (t *TelegramChannel) Stop(_ context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}
	t.SetRunning(false)
	return nil
}

func (t *TelegramChannel) handleUpdates(ctx context.Context, updates <-chan telego.Update) {
	for update := range updates {
		switch {
		case update.Message != nil:
			m := update.Message
			t.HandleMessage(
				strconv.Itoa(m.MessageID),
				telegramSenderID(m.From),
				strconv.FormatInt(m.Chat.ID, 10),
				m.Text,
				nil,
			)

		case update.CallbackQuery != nil:
			q := update.CallbackQuery
			if err := t.bot.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
				CallbackQueryID: q.ID,
			}); err != nil {
				logger.WarnCF("telegram", "Answering callback query failed",
					map[string]any{"error": err.Error()})
			}
			// Route the callback payload like message text.
			if m, ok := q.Message.(*telego.Message); ok {
				t.HandleMessage(
					strconv.Itoa(m.MessageID),
					telegramSenderID(&q.From),
					strconv.FormatInt(m.Chat.ID, 10),
					q.Data,
					map[string]string{"callback_query": q.ID},
				)
			}
		}
	}
}

func telegramSenderID(u *telego.User) string {
	if u == nil {
		return ""
	}
	id := strconv.FormatInt(u.ID, 10)
	if u.Username != "" {
		id += "|" + u.Username
	}
	return id
}

func (t *TelegramChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	chatID, err := strconv.ParseInt(msg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", msg.ChatID, err)
	}
	id := tu.ID(chatID)

	switch {
	case msg.EditMessageID != "":
		messageID, err := strconv.Atoi(msg.EditMessageID)
		if err != nil {
			return fmt.Errorf("invalid message id %q: %w", msg.EditMessageID, err)
		}
		_, err = t.bot.EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:    id,
			MessageID: messageID,
			Text:      msg.Content,
		})
		return err

	case msg.Document != nil:
		doc := tu.Document(id, tu.File(tu.NameReader(bytes.NewReader(msg.Document.Data), msg.Document.Name)))
		if msg.Content != "" {
			doc = doc.WithCaption(msg.Content)
		}
		_, err = t.bot.SendDocument(ctx, doc)
		return err

	case msg.PhotoURL != "":
		photo := tu.Photo(id, tu.FileFromURL(msg.PhotoURL))
		if msg.Content != "" {
			photo = photo.WithCaption(msg.Content)
		}
		_, err = t.bot.SendPhoto(ctx, photo)
		return err

	case msg.Location != nil:
		_, err = t.bot.SendLocation(ctx, tu.Location(id, msg.Location.Latitude, msg.Location.Longitude))
		return err

	default:
		_, err = t.bot.SendMessage(ctx, tu.Message(id, msg.Content))
		return err
	}
}

// PublishCommands pushes the command menu to Telegram. Repeated calls simply
// re-publish the same list.
func (t *TelegramChannel) PublishCommands(ctx context.Context, commands []dispatch.CommandInfo) error {
	botCommands := make([]telego.BotCommand, len(commands))
	for i, cmd := range commands {
		botCommands[i] = telego.BotCommand{
			Command:     cmd.Name,
			Description: cmd.Description,
		}
	}
	return t.bot.SetMyCommands(ctx, &telego.SetMyCommandsParams{Commands: botCommands})
}
