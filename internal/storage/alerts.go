package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"selfcare-course-bot/internal/models"
)

// CreateAlert records a crisis keyword hit. handled starts false.
func (s *Storage) CreateAlert(ctx context.Context, chatID int64, keyword, message string) error {
	query := s.psql.Insert("alerts").
		Columns("chat_id", "keyword", "message", "created_at").
		Values(chatID, keyword, message, now())

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	if _, err = s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("create alert (chat_id: %d, keyword: %s): %w", chatID, keyword, err)
	}
	return nil
}

// MarkAlertHandled is the only mutation alerts ever get.
func (s *Storage) MarkAlertHandled(ctx context.Context, id int64) error {
	query := s.psql.Update("alerts").Set("handled", true).Where(sq.Eq{"id": id})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (alert: %d): %w", id, err)
	}
	if _, err = s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("mark alert handled (alert: %d): %w", id, err)
	}
	return nil
}

func (s *Storage) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	var res []models.Alert
	err := s.db.SelectContext(ctx, &res, `
        SELECT id, chat_id, keyword, message, handled, created_at
        FROM alerts ORDER BY handled, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return res, nil
}

func (s *Storage) CountUnhandledAlerts(ctx context.Context) (int, error) {
	n, err := s.countRow(ctx, `SELECT COUNT(*) FROM alerts WHERE handled = 0`)
	if err != nil {
		return 0, fmt.Errorf("count unhandled alerts: %w", err)
	}
	return n, nil
}
