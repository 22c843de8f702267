package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleText captures any free-form message as a response for the
// user's current day and scans it for crisis keywords.
func (h *Handler) HandleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	u, err := h.DB.GetUser(ctx, chatID)
	if err != nil {
		h.apologize(chatID, "text: get user", err)
		return
	}
	if u == nil {
		h.send(chatID, "Отправь /start, чтобы начать курс.")
		return
	}

	if err := h.DB.SaveResponse(ctx, chatID, u.CurrentDay, "free", text); err != nil {
		h.apologize(chatID, "save free response", err)
		return
	}

	// Тревожные слова не меняют обычный ход диалога, только создают
	// алерт и уведомляют оператора.
	if kw, ok := detectKeyword(text, h.Cfg.CrisisKeywords); ok {
		h.raiseAlert(ctx, chatID, kw, text)
	}

	h.send(chatID, "Записал, спасибо, что делишься!")
}

// detectKeyword does a case-insensitive substring match over the
// configured keyword list. Keywords are stored lowercased.
func detectKeyword(text string, keywords []string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return kw, true
		}
	}
	return "", false
}

func (h *Handler) raiseAlert(ctx context.Context, chatID int64, keyword, text string) {
	if err := h.DB.CreateAlert(ctx, chatID, keyword, text); err != nil {
		zap.S().Errorw("create alert", "chat_id", chatID, "keyword", keyword, "error", err)
		return
	}
	zap.S().Warnw("crisis keyword detected", "chat_id", chatID, "keyword", keyword)

	notify := fmt.Sprintf("⚠️ Тревожное слово «%s» в ответе пользователя %d:\n\n%s", keyword, chatID, text)
	if _, err := h.Bot.Send(tgbotapi.NewMessage(h.Cfg.AdminChatID, notify)); err != nil {
		zap.S().Errorw("notify admin", "chat_id", chatID, "error", err)
	}
}
