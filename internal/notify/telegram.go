package notify

import (
	"context"
	"fmt"

	"tripdesk/internal/config"
	"tripdesk/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramChannel sends a short operator ping per booking. Send-only; the bot
// never reads updates.
type TelegramChannel struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramChannel(cfg config.TelegramConfig) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramChannel{bot: bot, chatID: cfg.ChatID}, nil
}

func (t *TelegramChannel) Ping(ctx context.Context, b *models.Booking) error {
	text := fmt.Sprintf("New %s request #%s", b.Type, b.ID)
	if b.Urgent {
		text = "❗" + text
	}
	if b.Name != "" {
		text += fmt.Sprintf("\nFrom: %s", b.Name)
	}
	if b.Phone != "" {
		text += fmt.Sprintf("\nPhone: %s", b.Phone)
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	_, err := t.bot.Send(msg)
	return err
}
