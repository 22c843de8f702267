package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"selfcare-course-bot/internal/config"
	"selfcare-course-bot/internal/scheduler"
	"selfcare-course-bot/internal/storage"
)

const msgApology = "Что-то пошло не так, уже разбираемся. Попробуй ещё раз чуть позже."

type Handler struct {
	Bot    *tgbotapi.BotAPI
	DB     *storage.Storage
	Engine *scheduler.Engine
	Cfg    *config.Config
}

// HandleUpdate dispatches one inbound update.
func (h *Handler) HandleUpdate(upd tgbotapi.Update) {
	ctx := context.Background()

	switch {
	case upd.Message != nil:
		// любое входящее сообщение продлевает окно активности
		if err := h.DB.TouchActivity(ctx, upd.Message.Chat.ID); err != nil {
			zap.S().Errorw("touch activity", "chat_id", upd.Message.Chat.ID, "error", err)
		}
		if upd.Message.IsCommand() {
			h.HandleCommand(ctx, upd.Message)
		} else {
			h.HandleText(ctx, upd.Message)
		}

	case upd.CallbackQuery != nil:
		if err := h.DB.TouchActivity(ctx, upd.CallbackQuery.Message.Chat.ID); err != nil {
			zap.S().Errorw("touch activity", "chat_id", upd.CallbackQuery.Message.Chat.ID, "error", err)
		}
		h.HandleCallback(ctx, upd.CallbackQuery)
	}
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		zap.S().Errorw("send message", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.Bot.Send(msg); err != nil {
		zap.S().Errorw("send message", "chat_id", chatID, "error", err)
	}
}

// apologize hides the real error from the user.
func (h *Handler) apologize(chatID int64, op string, err error) {
	zap.S().Errorw(op, "chat_id", chatID, "error", err)
	h.send(chatID, msgApology)
}
