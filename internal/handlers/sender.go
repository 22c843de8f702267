package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"selfcare-course-bot/internal/content"
)

// Sender adapts the bot API to the scheduler's delivery contract.
type Sender struct {
	Bot *tgbotapi.BotAPI
}

func (s *Sender) SendSlot(chatID int64, text string, options []content.Option) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(options) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
		for _, o := range options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Token),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	_, err := s.Bot.Send(msg)
	return err
}
