package storage

import (
	"context"
	"fmt"

	"selfcare-course-bot/internal/models"
)

// SaveResponse appends a user answer. Responses are never mutated.
func (s *Storage) SaveResponse(ctx context.Context, chatID int64, day int, kind, text string) error {
	query := s.psql.Insert("responses").
		Columns("chat_id", "day", "kind", "text", "created_at").
		Values(chatID, day, kind, text, now())

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build SQL query (chat_id: %d): %w", chatID, err)
	}
	if _, err = s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("save response (chat_id: %d, day: %d, kind: %s): %w", chatID, day, kind, err)
	}
	return nil
}

// ListResponses returns newest-first, capped by limit (0 = all).
func (s *Storage) ListResponses(ctx context.Context, limit int) ([]models.Response, error) {
	q := `SELECT id, chat_id, day, kind, text, created_at FROM responses ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	var res []models.Response
	if err := s.db.SelectContext(ctx, &res, q, args...); err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return res, nil
}
