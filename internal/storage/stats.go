package storage

import (
	"context"
	"fmt"

	"selfcare-course-bot/internal/models"
)

// Stats is the dashboard summary.
type Stats struct {
	TotalUsers      int
	ActiveUsers     int
	PausedUsers     int
	CompletedUsers  int
	TotalResponses  int
	UnhandledAlerts int
	UsersByDay      [models.CourseLength]int // index 0 = day 1
}

func (s *Storage) Stats(ctx context.Context, activeCutoff int64) (*Stats, error) {
	var st Stats
	var err error

	if st.TotalUsers, err = s.countRow(ctx, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("stats users: %w", err)
	}
	if st.ActiveUsers, err = s.countRow(ctx, `
        SELECT COUNT(*) FROM users
        WHERE course_completed = 0 AND paused = 0 AND notifications = 1
          AND current_day BETWEEN 1 AND ? AND last_active_at >= ?`,
		models.CourseLength, activeCutoff); err != nil {
		return nil, fmt.Errorf("stats active users: %w", err)
	}
	if st.PausedUsers, err = s.countRow(ctx, `SELECT COUNT(*) FROM users WHERE paused = 1`); err != nil {
		return nil, fmt.Errorf("stats paused users: %w", err)
	}
	if st.CompletedUsers, err = s.countRow(ctx, `SELECT COUNT(*) FROM users WHERE course_completed = 1`); err != nil {
		return nil, fmt.Errorf("stats completed users: %w", err)
	}
	if st.TotalResponses, err = s.countRow(ctx, `SELECT COUNT(*) FROM responses`); err != nil {
		return nil, fmt.Errorf("stats responses: %w", err)
	}
	if st.UnhandledAlerts, err = s.CountUnhandledAlerts(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT current_day, COUNT(*) FROM users
        WHERE course_completed = 0 AND current_day BETWEEN 1 AND ?
        GROUP BY current_day`, models.CourseLength)
	if err != nil {
		return nil, fmt.Errorf("stats users by day: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var day, n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("stats users by day scan: %w", err)
		}
		st.UsersByDay[day-1] = n
	}
	return &st, rows.Err()
}
