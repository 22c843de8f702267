package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"selfcare-course-bot/internal/models"
)

// WasSlotSentToday reports whether the slot is already logged for the
// given date. A failed read counts as "not sent": the send log itself
// still dedupes, so the worst case is a redundant insert attempt.
func (s *Storage) WasSlotSentToday(ctx context.Context, chatID int64, day int, slot models.Slot, date string) bool {
	n, err := s.countRow(ctx, `
        SELECT COUNT(*) FROM reminder_log
        WHERE chat_id = ? AND day = ? AND slot = ? AND sent_on = ?`,
		chatID, day, slot, date)
	if err != nil {
		zap.S().Errorw("check slot sent", "chat_id", chatID, "day", day, "slot", slot, "error", err)
		return false
	}
	return n > 0
}

// LogSlotSent appends to the send log. Inserting an existing
// (chat_id, day, slot, sent_on) key is a silent no-op.
func (s *Storage) LogSlotSent(ctx context.Context, chatID int64, day int, slot models.Slot, date string) error {
	query := s.psql.Insert("reminder_log").
		Columns("chat_id", "day", "slot", "sent_on", "sent_at").
		Values(chatID, day, slot, date, now()).
		Suffix("ON CONFLICT(chat_id, day, slot, sent_on) DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	if _, err = s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("log slot sent (chat_id: %d, day: %d, slot: %s): %w", chatID, day, slot, err)
	}
	return nil
}

// AllSlotsSentToday is true iff every canonical slot is logged for the
// date. False on read failure, which postpones advancement instead of
// guessing.
func (s *Storage) AllSlotsSentToday(ctx context.Context, chatID int64, day int, date string) bool {
	n, err := s.countRow(ctx, `
        SELECT COUNT(DISTINCT slot) FROM reminder_log
        WHERE chat_id = ? AND day = ? AND sent_on = ?
          AND slot IN (?, ?, ?, ?)`,
		chatID, day, date,
		models.SlotMorning, models.SlotExercise, models.SlotPhrase, models.SlotEvening)
	if err != nil {
		zap.S().Errorw("check all slots sent", "chat_id", chatID, "day", day, "error", err)
		return false
	}
	return n == len(models.Slots)
}

// MarkDayCompleted upserts the completion flag. The returned bool is
// true only for the call that actually flipped it, so the caller
// advances the user exactly once per day.
func (s *Storage) MarkDayCompleted(ctx context.Context, chatID int64, day int, date string) (bool, error) {
	query := s.psql.Insert("day_progress").
		Columns("chat_id", "day", "completed", "completed_at", "completed_on").
		Values(chatID, day, true, now(), date).
		Suffix("ON CONFLICT(chat_id, day) DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	res, err := s.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, fmt.Errorf("mark day completed (chat_id: %d, day: %d): %w", chatID, day, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark day completed rows (chat_id: %d, day: %d): %w", chatID, day, err)
	}
	return n == 1, nil
}

// SlotsSentToday lists which slots went out for the date, for /progress.
func (s *Storage) SlotsSentToday(ctx context.Context, chatID int64, day int, date string) ([]models.Slot, error) {
	query := s.psql.Select("slot").From("reminder_log").
		Where(sq.Eq{"chat_id": chatID, "day": day, "sent_on": date}).
		OrderBy("sent_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	var res []models.Slot
	if err = s.db.SelectContext(ctx, &res, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("list slots sent (chat_id: %d, day: %d): %w", chatID, day, err)
	}
	return res, nil
}
