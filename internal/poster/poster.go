package poster

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"daily-bot/internal/config"
	"daily-bot/internal/models"
	"daily-bot/pkg/logger"
)

var (
	ErrEmptyChannel = errors.New("channel must not be empty")
	ErrEmptyText    = errors.New("message text must not be empty")
	ErrNotConnected = errors.New("poster is not connected")
)

// Channel is a chat ID or @username, passed to the Telegram API as-is.
type Channel string

func (c Channel) Recipient() string { return string(c) }

type sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Poster delivers one message per call. Failures are classified and
// logged but never retried here; the next scheduled tick is the retry
// boundary.
type Poster struct {
	settings telebot.Settings
	bot      sender
	mode     telebot.ParseMode
}

func New(cfg config.BotConfig) (*Poster, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	return &Poster{
		settings: telebot.Settings{Token: cfg.Token},
		mode:     telebot.ParseMode(cfg.ParseMode),
	}, nil
}

// Connect creates the underlying bot, validating the token against the
// Telegram API.
func (p *Poster) Connect() error {
	tbot, err := telebot.NewBot(p.settings)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	p.bot = tbot
	return nil
}

func (p *Poster) Post(channel string, item models.ContentItem) error {
	if channel == "" {
		return ErrEmptyChannel
	}
	if strings.TrimSpace(item.Text) == "" {
		return ErrEmptyText
	}
	if p.bot == nil {
		return ErrNotConnected
	}

	_, err := p.bot.Send(Channel(channel), item.Text, &telebot.SendOptions{
		ParseMode: p.mode,
	})
	if err != nil {
		reason := classify(err)
		logger.Error("Failed to post message",
			logger.String("channel", channel),
			logger.String("kind", string(item.Kind)),
			logger.String("reason", reason),
			logger.Err(err),
		)
		return fmt.Errorf("post to %s failed (%s): %w", channel, reason, err)
	}

	logger.Info("Posted message",
		logger.String("channel", channel),
		logger.String("kind", string(item.Kind)),
	)
	return nil
}

// classify maps a send failure to a stable reason string for the logs.
func classify(err error) string {
	switch {
	case errors.Is(err, telebot.ErrUnauthorized):
		return "auth rejected"
	case errors.Is(err, telebot.ErrChatNotFound):
		return "channel not found"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Too Many Requests") || strings.Contains(msg, "retry after"):
		return "rate limited"
	case strings.Contains(msg, "Unauthorized"):
		return "auth rejected"
	case strings.Contains(msg, "chat not found"):
		return "channel not found"
	case strings.Contains(msg, "Forbidden"):
		return "not permitted"
	case strings.Contains(msg, "unmarshal") || strings.Contains(msg, "unexpected end of JSON"):
		return "malformed response"
	default:
		return "transport error"
	}
}
