// Package store defines the per-chat ledger store consumed by the bot and a
// factory that selects the configured backend.
package store

import (
	"context"
	"fmt"

	"tgexp/internal/core"
	"tgexp/internal/store/memory"
	"tgexp/internal/store/sqlite"
)

// Store is the per-chat append-only ledger. Implementations serialize
// per-chat writes; the bot itself handles messages strictly sequentially.
type Store interface {
	// Positions returns the chat's ledger in insertion order. A chat seen
	// for the first time has an empty ledger.
	Positions(ctx context.Context, chatID int64) ([]core.Position, error)

	// Append adds a position to the end of the chat's ledger and returns a
	// stable reference id for it.
	Append(ctx context.Context, chatID int64, p core.Position) (int64, error)

	// ResetTimestamp returns the start of the chat's current accounting
	// period. On first read it is initialized to the current time and that
	// initialization is persisted.
	ResetTimestamp(ctx context.Context, chatID int64) (int64, error)

	// SetResetTimestamp moves the accounting baseline. Stored positions
	// are left untouched.
	SetResetTimestamp(ctx context.Context, chatID int64, ts int64) error

	Close() error
}

// Backend selects the ledger persistence implementation.
type Backend string

const (
	MemoryBackend Backend = "memory"
	SQLiteBackend Backend = "sqlite"
)

func (b Backend) IsValid() bool {
	switch b {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds backend selection plus backend-specific settings.
type Config struct {
	Type Backend

	// Memory backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
}

// Open creates the configured store.
func Open(cfg Config) (Store, error) {
	switch cfg.Type {
	case MemoryBackend:
		return memory.Open(cfg.DataDir)
	case SQLiteBackend:
		return sqlite.Open(cfg.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("invalid store backend: %q", cfg.Type)
	}
}
