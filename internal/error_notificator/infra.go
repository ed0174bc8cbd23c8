package error_notificator

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender — то, что нужно от *tgbotapi.BotAPI
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramInfra struct {
	bot         sender
	adminChatID int64
}

// NewTelegramInfra проверяет токен через getMe, поэтому требует сети на старте
func NewTelegramInfra(token string, adminChatID int64) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &TelegramInfra{bot: bot, adminChatID: adminChatID}, nil
}

func (i *TelegramInfra) Notify(ctx context.Context, source string, err error, details string) error {
	text := fmt.Sprintf("❗ Ошибка в echo bot (%s)\n\nОшибка: %v", source, err)
	if details != "" {
		text += "\n\nДетали: " + details
	}

	msg := tgbotapi.NewMessage(i.adminChatID, text)

	if _, sendErr := i.bot.Send(msg); sendErr != nil {
		return fmt.Errorf("telegram send: %w", sendErr)
	}

	return nil
}
