package channels

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/tinyland-inc/gofer/pkg/bus"
	"github.com/tinyland-inc/gofer/pkg/config"
	"github.com/tinyland-inc/gofer/pkg/logger"
)

const discordMaxMessageLength = 2000

type DiscordChannel struct {
	*BaseChannel
	session *discordgo.Session
}

func NewDiscordChannel(cfg config.DiscordConfig, msgBus *bus.MessageBus) (*DiscordChannel, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &DiscordChannel{
		BaseChannel: NewBaseChannel("discord", msgBus, cfg.AllowFrom,
			WithMaxMessageLength(discordMaxMessageLength)),
		session: session,
	}, nil
}

func (d *DiscordChannel) Start(_ context.Context) error {
	d.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		senderID := m.Author.ID
		if m.Author.Username != "" {
			senderID += "|" + m.Author.Username
		}
		d.HandleMessage(m.ID, senderID, m.ChannelID, m.Content, nil)
	})

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}
	logger.InfoCF("discord", "Connected", map[string]any{"user": d.session.State.User.Username})
	d.SetRunning(true)
	return nil
}

func (d *DiscordChannel) Stop(_ context.Context) error {
	d.SetRunning(false)
	return d.session.Close()
}

func (d *DiscordChannel) Send(_ context.Context, msg bus.OutboundMessage) error {
	switch {
	case msg.EditMessageID != "":
		_, err := d.session.ChannelMessageEdit(msg.ChatID, msg.EditMessageID, msg.Content)
		return err

	case msg.Document != nil:
		_, err := d.session.ChannelFileSendWithMessage(msg.ChatID, msg.Content,
			msg.Document.Name, bytes.NewReader(msg.Document.Data))
		return err

	case msg.Location != nil:
		text := fmt.Sprintf("%s\nhttps://maps.google.com/?q=%f,%f",
			msg.Content, msg.Location.Latitude, msg.Location.Longitude)
		_, err := d.session.ChannelMessageSend(msg.ChatID, text)
		return err

	case msg.PhotoURL != "":
		text := msg.Content
		if text != "" {
			text += "\n"
		}
		text += msg.PhotoURL
		_, err := d.session.ChannelMessageSend(msg.ChatID, text)
		return err

	default:
		_, err := d.session.ChannelMessageSend(msg.ChatID, msg.Content)
		return err
	}
}
