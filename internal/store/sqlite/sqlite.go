// Package sqlite implements the ledger store on SQLite. It is the backend to
// use when the sheet-export pipeline is enabled, since the worker reads
// positions back by id.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tgexp/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and if necessary creates) the database at dbPath and brings the
// schema up to date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Positions(ctx context.Context, chatID int64) ([]core.Position, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT price_cents, comment, from_name, from_id, timestamp
		 FROM positions WHERE chat_id = ? ORDER BY id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var out []core.Position
	for rows.Next() {
		var p core.Position
		if err := rows.Scan(&p.Price.Cents, &p.Comment, &p.From, &p.FromID, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate positions: %w", err)
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, chatID int64, p core.Position) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO positions (chat_id, price_cents, comment, from_name, from_id, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		chatID, p.Price.Cents, p.Comment, p.From, p.FromID, p.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("position id: %w", err)
	}

	slog.InfoContext(ctx, "Position saved",
		"id", id,
		"chat_id", chatID,
		"from_id", p.FromID,
		"price_cents", p.Price.Cents)

	return id, nil
}

func (s *Store) ResetTimestamp(ctx context.Context, chatID int64) (int64, error) {
	var ts int64
	err := s.db.QueryRowContext(ctx,
		`SELECT totals_since FROM chats WHERE chat_id = ?`, chatID).Scan(&ts)
	if err == nil {
		return ts, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("query reset timestamp: %w", err)
	}

	// First read for this chat: initialize the baseline to now and keep it.
	ts = s.now().Unix()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (chat_id, totals_since) VALUES (?, ?)
		 ON CONFLICT(chat_id) DO NOTHING`, chatID, ts); err != nil {
		return 0, fmt.Errorf("init reset timestamp: %w", err)
	}
	return ts, nil
}

func (s *Store) SetResetTimestamp(ctx context.Context, chatID int64, ts int64) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO chats (chat_id, totals_since) VALUES (?, ?)
		 ON CONFLICT(chat_id) DO UPDATE SET totals_since = excluded.totals_since`,
		chatID, ts); err != nil {
		return fmt.Errorf("set reset timestamp: %w", err)
	}
	return nil
}

// GetPosition loads a single position by its reference id. Used by the export
// worker to fetch the row a sync message refers to.
func (s *Store) GetPosition(ctx context.Context, id int64) (core.Position, int64, error) {
	var (
		p      core.Position
		chatID int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT chat_id, price_cents, comment, from_name, from_id, timestamp
		 FROM positions WHERE id = ?`, id).
		Scan(&chatID, &p.Price.Cents, &p.Comment, &p.From, &p.FromID, &p.Timestamp)
	if err != nil {
		return core.Position{}, 0, fmt.Errorf("get position %d: %w", id, err)
	}
	return p, chatID, nil
}
