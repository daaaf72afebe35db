package error_notificator

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramInfra struct {
	bot         Sender
	adminChatID int64
}

func NewTelegramInfra(token string, adminChatID int64) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return newTelegramInfra(bot, adminChatID), nil
}

func newTelegramInfra(bot Sender, adminChatID int64) *TelegramInfra {
	return &TelegramInfra{bot: bot, adminChatID: adminChatID}
}

func (i *TelegramInfra) Notify(ctx context.Context, runID string, err error, details string) error {
	text := fmt.Sprintf(
		"❗ Translator error (run %s)\n\nError: %v\n\nDetails: %s",
		runID,
		err,
		details,
	)

	_, sendErr := i.bot.Send(tgbotapi.NewMessage(i.adminChatID, text))
	return sendErr
}
