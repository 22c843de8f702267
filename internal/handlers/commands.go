package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"selfcare-course-bot/internal/content"
	"selfcare-course-bot/internal/models"
	"selfcare-course-bot/internal/quiz"
)

const (
	msgWelcome = "Привет! Это 7-дневный курс заботы о себе. Каждый день я буду присылать " +
		"четыре коротких сообщения: утреннее приветствие, практику, фразу дня и вечерний итог.\n\n" +
		"Команды: /progress — где ты сейчас, /pause и /resume — пауза и возврат, " +
		"/quiz — подобрать формат, /reset — начать заново, /help — справка."
	msgHelp = "Курс идёт 7 дней, по четыре сообщения в день.\n" +
		"/progress — текущий день и что уже пришло сегодня\n" +
		"/pause — приостановить рассылку\n" +
		"/resume — продолжить\n" +
		"/quiz — подобрать персональный формат\n" +
		"/reset — сбросить прогресс и начать с дня 1"
	msgCompleted = "Ты уже прошёл(ла) весь курс — поздравляю ещё раз! " +
		"Если хочешь пройти заново, отправь /reset."
	msgPaused      = "Рассылка на паузе. Вернуться — /resume."
	msgResumed     = "С возвращением! Продолжаем с текущего дня."
	msgResetAsk    = "Сбросить прогресс и начать курс с первого дня? Записи твоих ответов сохранятся."
	msgResetDone   = "Готово, начинаем заново. Завтра утром придёт сообщение первого дня."
	msgResetKept   = "Хорошо, продолжаем как есть."
	msgUnknownCmd  = "Не знаю такой команды. Список — в /help."
	btnResetYes    = "Да, сбросить"
	btnResetNo     = "Оставить как есть"
	cbResetConfirm = "reset:yes"
	cbResetCancel  = "reset:no"
)

func (h *Handler) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, chatID, msg.From.UserName)
	case "help":
		h.send(chatID, msgHelp)
	case "progress":
		h.handleProgress(ctx, chatID)
	case "pause":
		h.handlePause(ctx, chatID, true)
	case "resume":
		h.handlePause(ctx, chatID, false)
	case "reset":
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(btnResetYes, cbResetConfirm),
				tgbotapi.NewInlineKeyboardButtonData(btnResetNo, cbResetCancel),
			),
		)
		h.sendWithKeyboard(chatID, msgResetAsk, kb)
	case "quiz":
		h.startQuiz(ctx, chatID)
	default:
		h.send(chatID, msgUnknownCmd)
	}
}

// handleStart branches by what we know about the chat: new, mid-course
// or already finished.
func (h *Handler) handleStart(ctx context.Context, chatID int64, username string) {
	u, err := h.DB.GetUser(ctx, chatID)
	if err != nil {
		h.apologize(chatID, "start: get user", err)
		return
	}

	switch {
	case u == nil:
		if err := h.DB.CreateUser(ctx, chatID, username); err != nil {
			h.apologize(chatID, "start: create user", err)
			return
		}
		h.send(chatID, msgWelcome)
		if dc, ok := content.Day(1); ok {
			h.send(chatID, dc.Title)
		}
	case u.CourseCompleted:
		h.send(chatID, msgCompleted)
	default:
		h.send(chatID, fmt.Sprintf("С возвращением! Ты на дне %d из %d. Продолжаем.",
			u.CurrentDay, models.CourseLength))
	}
}

func (h *Handler) handleProgress(ctx context.Context, chatID int64) {
	u, err := h.DB.GetUser(ctx, chatID)
	if err != nil {
		h.apologize(chatID, "progress: get user", err)
		return
	}
	if u == nil {
		h.send(chatID, "Мы ещё не знакомы — отправь /start.")
		return
	}
	if u.CourseCompleted {
		h.send(chatID, msgCompleted)
		return
	}

	slots, err := h.DB.SlotsSentToday(ctx, chatID, u.CurrentDay, h.Cfg.Today())
	if err != nil {
		h.apologize(chatID, "progress: slots sent", err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "День %d из %d.\n", u.CurrentDay, models.CourseLength)
	if u.Paused {
		b.WriteString("Рассылка на паузе (/resume — вернуться).\n")
	}
	fmt.Fprintf(&b, "Сегодня пришло сообщений: %d из %d.", len(slots), len(models.Slots))
	h.send(chatID, b.String())
}

func (h *Handler) handlePause(ctx context.Context, chatID int64, paused bool) {
	if err := h.DB.SetPaused(ctx, chatID, paused); err != nil {
		h.apologize(chatID, "set paused", err)
		return
	}
	if paused {
		h.send(chatID, msgPaused)
	} else {
		h.send(chatID, msgResumed)
	}
}

func (h *Handler) startQuiz(ctx context.Context, chatID int64) {
	if err := h.DB.SetUserState(ctx, chatID, "quiz:0:"); err != nil {
		h.apologize(chatID, "quiz: set state", err)
		return
	}
	h.sendQuizQuestion(chatID, 0)
}

func (h *Handler) sendQuizQuestion(chatID int64, step int) {
	q := quiz.Questions[step]
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, o := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, "quiz:"+string(o.Answer)),
		))
	}
	h.sendWithKeyboard(chatID, q.Text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}
