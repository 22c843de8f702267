package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"selfcare-course-bot/internal/models"
)

const userColumns = `id, chat_id, username, current_day, paused, course_completed, notifications, last_active_at, created_at`

// CreateUser registers a chat on first contact. A second call for the
// same chat is a no-op.
func (s *Storage) CreateUser(ctx context.Context, chatID int64, username string) error {
	ts := now()
	query := s.psql.Insert("users").
		Columns("chat_id", "username", "current_day", "last_active_at", "created_at").
		Values(chatID, username, 1, ts, ts).
		Suffix("ON CONFLICT(chat_id) DO NOTHING")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	if _, err = s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("create user (chat_id: %d): %w", chatID, err)
	}
	return nil
}

// GetUser returns nil without error when the chat is unknown.
func (s *Storage) GetUser(ctx context.Context, chatID int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE chat_id = ?`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user (chat_id: %d): %w", chatID, err)
	}
	return &u, nil
}

// ListActiveUsers returns users eligible for scheduled sends: course not
// completed, not paused, notifications on, day within the course and
// touched since cutoff (unix seconds). Ordered by day, then seniority.
func (s *Storage) ListActiveUsers(ctx context.Context, cutoff int64) ([]models.User, error) {
	var res []models.User
	err := s.db.SelectContext(ctx, &res, `
        SELECT `+userColumns+` FROM users
        WHERE course_completed = 0
          AND paused = 0
          AND notifications = 1
          AND current_day BETWEEN 1 AND ?
          AND last_active_at >= ?
        ORDER BY current_day, created_at`,
		models.CourseLength, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	return res, nil
}

// ListUsers returns every user, for the dashboard export.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	var res []models.User
	err := s.db.SelectContext(ctx, &res,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return res, nil
}

func (s *Storage) SetPaused(ctx context.Context, chatID int64, paused bool) error {
	if err := s.updateUser(ctx, chatID, "paused", paused); err != nil {
		return fmt.Errorf("set paused (chat_id: %d): %w", chatID, err)
	}
	return nil
}

func (s *Storage) SetNotifications(ctx context.Context, chatID int64, enabled bool) error {
	if err := s.updateUser(ctx, chatID, "notifications", enabled); err != nil {
		return fmt.Errorf("set notifications (chat_id: %d): %w", chatID, err)
	}
	return nil
}

// AdvanceUserDay moves the user forward. The day never goes backwards:
// the guard keeps a late duplicate advance from rewinding progress.
func (s *Storage) AdvanceUserDay(ctx context.Context, chatID int64, newDay int) error {
	query := s.psql.Update("users").
		Set("current_day", newDay).
		Where(sq.And{
			sq.Eq{"chat_id": chatID},
			sq.Lt{"current_day": newDay},
			sq.Eq{"course_completed": 0},
		})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	if _, err = s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("advance user day (chat_id: %d, day: %d): %w", chatID, newDay, err)
	}
	return nil
}

// MarkCourseCompleted is terminal; current_day stays where it is.
func (s *Storage) MarkCourseCompleted(ctx context.Context, chatID int64) error {
	if err := s.updateUser(ctx, chatID, "course_completed", true); err != nil {
		return fmt.Errorf("mark course completed (chat_id: %d): %w", chatID, err)
	}
	return nil
}

// TouchActivity bumps last_active_at; called on every inbound event.
func (s *Storage) TouchActivity(ctx context.Context, chatID int64) error {
	if err := s.updateUser(ctx, chatID, "last_active_at", now()); err != nil {
		return fmt.Errorf("touch activity (chat_id: %d): %w", chatID, err)
	}
	return nil
}

// ResetProgress soft-resets a user back to day 1: completion flags,
// day progress and the send log are cleared, responses stay.
func (s *Storage) ResetProgress(ctx context.Context, chatID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset (chat_id: %d): %w", chatID, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `
        UPDATE users SET current_day = 1, course_completed = 0, paused = 0
        WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("reset user (chat_id: %d): %w", chatID, err)
	}
	for _, tbl := range []string{"day_progress", "reminder_log", "user_states"} {
		if _, err = tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE chat_id = ?", tbl), chatID); err != nil {
			return fmt.Errorf("reset %s (chat_id: %d): %w", tbl, chatID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reset (chat_id: %d): %w", chatID, err)
	}
	return nil
}

func (s *Storage) updateUser(ctx context.Context, chatID int64, column string, value any) error {
	query := s.psql.Update("users").Set(column, value).Where(sq.Eq{"chat_id": chatID})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ---------- user state (fsm) ------------------------------------------------

func (s *Storage) SetUserState(ctx context.Context, chatID int64, state string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO user_states (chat_id, state) VALUES (?, ?)
        ON CONFLICT(chat_id) DO UPDATE SET state = excluded.state`, chatID, state)
	if err != nil {
		return fmt.Errorf("set user state (chat_id: %d): %w", chatID, err)
	}
	return nil
}

func (s *Storage) GetUserState(ctx context.Context, chatID int64) (string, error) {
	var st string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM user_states WHERE chat_id = ?`, chatID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get user state (chat_id: %d): %w", chatID, err)
	}
	return st, nil
}
