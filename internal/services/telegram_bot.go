package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"weddinginvite/internal/rsvp"
)

// telegramHTTPTimeout bounds every Bot API call, including the getMe
// handshake.
const telegramHTTPTimeout = 15 * time.Second

type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

func NewTelegramService(botToken string, chatID int64, log *zap.Logger) (*TelegramService, error) {
	return NewTelegramServiceWithEndpoint(botToken, chatID, tgbotapi.APIEndpoint, &http.Client{Timeout: telegramHTTPTimeout}, log)
}

// NewTelegramServiceWithEndpoint talks to a custom Bot API endpoint. The
// endpoint is a format string taking the token and the method name.
func NewTelegramServiceWithEndpoint(botToken string, chatID int64, endpoint string, client *http.Client, log *zap.Logger) (*TelegramService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bot, err := tgbotapi.NewBotAPIWithClient(botToken, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	log.Info("telegram bot ready", zap.String("username", bot.Self.UserName))
	return &TelegramService{bot: bot, chatID: chatID, log: log.Named("telegram")}, nil
}

func (t *TelegramService) SendMessage(text string) error {
	if t == nil || t.chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		t.log.Warn("sendMessage failed", zap.Int64("chat_id", t.chatID), zap.Error(err))
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

func (t *TelegramService) NotifyConfirmation(ctx context.Context, c rsvp.Confirmation) error {
	text := fmt.Sprintf("✅ <b>%s</b> confirmó su asistencia\nCódigo: <code>%s</code>\nPases: %d",
		tgbotapi.EscapeText(tgbotapi.ModeHTML, c.DisplayName),
		tgbotapi.EscapeText(tgbotapi.ModeHTML, c.Code),
		c.MaxPases,
	)
	return withContext(ctx, func() error { return t.SendMessage(text) })
}
