package handlers

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"selfcare-course-bot/internal/content"
	"selfcare-course-bot/internal/quiz"
)

func (h *Handler) HandleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	data := cq.Data

	// сразу гасим "часики" на кнопке
	if _, err := h.Bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		zap.S().Warnw("answer callback", "chat_id", chatID, "error", err)
	}

	switch {
	case strings.HasPrefix(data, "ev:"):
		h.handleEveningChoice(ctx, chatID, data)
	case strings.HasPrefix(data, "quiz:"):
		h.handleQuizAnswer(ctx, chatID, strings.TrimPrefix(data, "quiz:"))
	case data == cbResetConfirm:
		if err := h.DB.ResetProgress(ctx, chatID); err != nil {
			h.apologize(chatID, "reset progress", err)
			return
		}
		h.send(chatID, msgResetDone)
	case data == cbResetCancel:
		h.send(chatID, msgResetKept)
	default:
		zap.S().Debugw("unknown callback token", "chat_id", chatID, "data", data)
	}
}

// handleEveningChoice persists the button answer and runs the shared
// day-completion check. This is the manual counterpart of the scheduled
// evening broadcast; both paths end in the same state machine.
func (h *Handler) handleEveningChoice(ctx context.Context, chatID int64, token string) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		zap.S().Warnw("malformed evening token", "chat_id", chatID, "token", token)
		return
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		zap.S().Warnw("malformed evening token", "chat_id", chatID, "token", token)
		return
	}

	label := token
	if dc, ok := content.Day(day); ok {
		for _, o := range dc.Options {
			if o.Token == token {
				label = o.Label
				break
			}
		}
	}

	if err := h.DB.SaveResponse(ctx, chatID, day, "evening", label); err != nil {
		h.apologize(chatID, "save evening response", err)
		return
	}

	u, err := h.DB.GetUser(ctx, chatID)
	if err != nil {
		h.apologize(chatID, "evening: get user", err)
		return
	}
	if u != nil && !u.CourseCompleted {
		if err := h.Engine.CompleteDayIfDone(ctx, chatID, u.CurrentDay, h.Cfg.Today()); err != nil {
			zap.S().Errorw("evening completion check", "chat_id", chatID, "day", u.CurrentDay, "error", err)
		}
	}

	h.send(chatID, "Спасибо! Ответ записан.")
}

func (h *Handler) handleQuizAnswer(ctx context.Context, chatID int64, answer string) {
	state, err := h.DB.GetUserState(ctx, chatID)
	if err != nil {
		h.apologize(chatID, "quiz: get state", err)
		return
	}
	if !strings.HasPrefix(state, "quiz:") {
		// кнопка от старого, уже завершённого опроса
		return
	}

	parts := strings.SplitN(state, ":", 3)
	if len(parts) != 3 {
		_ = h.DB.SetUserState(ctx, chatID, "")
		return
	}
	step, err := strconv.Atoi(parts[1])
	if err != nil || step < 0 || step >= len(quiz.Questions) {
		_ = h.DB.SetUserState(ctx, chatID, "")
		return
	}

	answers := parts[2]
	if answers != "" {
		answers += ","
	}
	answers += answer

	if step+1 < len(quiz.Questions) {
		next := "quiz:" + strconv.Itoa(step+1) + ":" + answers
		if err := h.DB.SetUserState(ctx, chatID, next); err != nil {
			h.apologize(chatID, "quiz: set state", err)
			return
		}
		h.sendQuizQuestion(chatID, step+1)
		return
	}

	// все три ответа собраны
	picked := strings.Split(answers, ",")
	var a quiz.Answers
	if len(picked) == 3 {
		a = quiz.Answers{
			Energy: quiz.Answer(picked[0]),
			Mood:   quiz.Answer(picked[1]),
			Time:   quiz.Answer(picked[2]),
		}
	}

	day := 0
	if u, err := h.DB.GetUser(ctx, chatID); err == nil && u != nil {
		day = u.CurrentDay
	}
	if err := h.DB.SaveResponse(ctx, chatID, day, "quiz", answers); err != nil {
		zap.S().Errorw("save quiz response", "chat_id", chatID, "error", err)
	}
	if err := h.DB.SetUserState(ctx, chatID, ""); err != nil {
		zap.S().Errorw("clear quiz state", "chat_id", chatID, "error", err)
	}

	h.send(chatID, quiz.Recommend(a))
}
