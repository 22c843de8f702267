package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Storage is the persistence gateway. All writes are idempotent per
// operation; reads used as scheduler guards degrade to empty/false
// instead of propagating, so a broken read never crashes a cycle.
type Storage struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func New(path string) (*Storage, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// Shared by the scheduler and the update loop; sqlite serializes
	// writers, one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &Storage{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

func migrate(db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// countRow runs a single-value count query and maps "no rows" to zero.
func (s *Storage) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func now() int64 { return time.Now().Unix() }
