package error_notificator

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Infra delivers alerts to one admin chat through a Telegram bot.
type Infra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewInfra(bot *tgbotapi.BotAPI, chatID int64) *Infra {
	return &Infra{bot: bot, chatID: chatID}
}

func (i *Infra) Notify(ctx context.Context, stage string, err error, details string) error {
	if i.bot == nil {
		return fmt.Errorf("telegram bot not configured")
	}

	text := fmt.Sprintf(
		"❗ VoiceBank relay error (%s)\n\nError: %v\n\nDetails: %s",
		stage,
		err,
		details,
	)

	if _, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, text)); sendErr != nil {
		return fmt.Errorf("send telegram alert: %w", sendErr)
	}
	return nil
}

// Noop is used when no admin chat is configured.
type Noop struct{}

func (Noop) Notify(context.Context, string, error, string) error {
	return nil
}
