package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"selfcare-course-bot/internal/content"
	"selfcare-course-bot/internal/models"
)

// Store is the slice of the persistence gateway the engine drives.
type Store interface {
	ListActiveUsers(ctx context.Context, cutoff int64) ([]models.User, error)
	WasSlotSentToday(ctx context.Context, chatID int64, day int, slot models.Slot, date string) bool
	LogSlotSent(ctx context.Context, chatID int64, day int, slot models.Slot, date string) error
	AllSlotsSentToday(ctx context.Context, chatID int64, day int, date string) bool
	MarkDayCompleted(ctx context.Context, chatID int64, day int, date string) (bool, error)
	AdvanceUserDay(ctx context.Context, chatID int64, newDay int) error
	MarkCourseCompleted(ctx context.Context, chatID int64) error
}

// Sender delivers one slot message; options become choice buttons.
type Sender interface {
	SendSlot(chatID int64, text string, options []content.Option) error
}

// Catalog resolves a course day to its content.
type Catalog func(day int) (content.DayContent, bool)

// Engine decides, per user and slot, whether to send, and owns day
// advancement. Advancement is driven off log completeness, not a
// counter: a resent slot cannot advance a user twice, and a crash
// between send and log only costs one deduplicated resend.
type Engine struct {
	store   Store
	sender  Sender
	catalog Catalog

	loc    *time.Location
	window time.Duration // active-user staleness window
}

func NewEngine(store Store, sender Sender, catalog Catalog, loc *time.Location, window time.Duration) *Engine {
	return &Engine{
		store:   store,
		sender:  sender,
		catalog: catalog,
		loc:     loc,
		window:  window,
	}
}

// Today returns the current date key in the course timezone.
func (e *Engine) Today() string {
	return time.Now().In(e.loc).Format("2006-01-02")
}

// RunSlot is one scheduled cycle for one slot. A failed user fetch
// aborts the whole cycle; a failed user is logged and skipped.
func (e *Engine) RunSlot(ctx context.Context, slot models.Slot) {
	today := e.Today()
	cutoff := time.Now().Add(-e.window).Unix()

	users, err := e.store.ListActiveUsers(ctx, cutoff)
	if err != nil {
		zap.S().Errorw("slot cycle aborted", "slot", slot, "error", err)
		return
	}

	sent := 0
	for _, u := range users {
		n, err := e.processUser(ctx, u, slot, today)
		if err != nil {
			zap.S().Errorw("process user", "chat_id", u.ChatID, "day", u.CurrentDay, "slot", slot, "error", err)
			continue
		}
		sent += n
	}
	zap.S().Infow("slot cycle done", "slot", slot, "eligible", len(users), "sent", sent)
}

func (e *Engine) processUser(ctx context.Context, u models.User, slot models.Slot, today string) (int, error) {
	// Повторная проверка: запрос уже фильтрует, но чтение могло быть
	// несогласованным.
	if u.CourseCompleted || u.CurrentDay < 1 || u.CurrentDay > models.CourseLength {
		return 0, nil
	}

	if e.store.WasSlotSentToday(ctx, u.ChatID, u.CurrentDay, slot, today) {
		return 0, nil
	}

	dc, ok := e.catalog(u.CurrentDay)
	if !ok {
		zap.S().Warnw("no content for day", "chat_id", u.ChatID, "day", u.CurrentDay)
		return 0, nil
	}

	var options []content.Option
	if slot == models.SlotEvening {
		options = dc.Options
	}
	if err := e.sender.SendSlot(u.ChatID, dc.Text(slot), options); err != nil {
		return 0, fmt.Errorf("send slot (chat_id: %d, day: %d, slot: %s): %w", u.ChatID, u.CurrentDay, slot, err)
	}

	if err := e.store.LogSlotSent(ctx, u.ChatID, u.CurrentDay, slot, today); err != nil {
		return 1, err
	}

	if slot == models.SlotEvening {
		return 1, e.CompleteDayIfDone(ctx, u.ChatID, u.CurrentDay, today)
	}
	return 1, nil
}

// CompleteDayIfDone is the single authority over day completion, shared
// by the evening broadcast and the evening button callback. The user
// advances only on the call that flips the completion flag, so both
// trigger paths together still advance at most once per day.
func (e *Engine) CompleteDayIfDone(ctx context.Context, chatID int64, day int, today string) error {
	if !e.store.AllSlotsSentToday(ctx, chatID, day, today) {
		return nil
	}

	first, err := e.store.MarkDayCompleted(ctx, chatID, day, today)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	if day >= models.CourseLength {
		zap.S().Infow("course completed", "chat_id", chatID)
		return e.store.MarkCourseCompleted(ctx, chatID)
	}
	zap.S().Infow("day completed", "chat_id", chatID, "day", day)
	return e.store.AdvanceUserDay(ctx, chatID, day+1)
}
