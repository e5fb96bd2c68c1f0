// Package memory implements the ledger store as an in-memory map with a JSON
// snapshot file, the same durability model as a local session database: load
// once at startup, rewrite the file on every mutation.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"tgexp/internal/core"
)

const snapshotFile = "data.json"

type chatState struct {
	Positions   []position `json:"positions"`
	TotalsSince int64      `json:"totals_since,omitempty"`
}

type position struct {
	PriceCents int64  `json:"price_cents"`
	Comment    string `json:"comment"`
	From       string `json:"from"`
	FromID     int64  `json:"from_id"`
	Timestamp  int64  `json:"timestamp"`
}

type snapshot struct {
	Chats map[string]*chatState `json:"chats"`
}

// Store keeps every chat's ledger in memory. With a data directory configured
// it persists a JSON snapshot on each mutation; with an empty directory it is
// purely volatile, which the tests use.
type Store struct {
	mu    sync.Mutex
	chats map[int64]*chatState
	path  string // empty disables persistence
	now   func() time.Time
}

// Open loads the snapshot from dataDir if one exists.
func Open(dataDir string) (*Store, error) {
	s := &Store{
		chats: make(map[int64]*chatState),
		now:   time.Now,
	}
	if dataDir == "" {
		return s, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s.path = filepath.Join(dataDir, snapshotFile)

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", s.path, err)
	}
	for key, state := range snap.Chats {
		chatID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("decode snapshot %s: bad chat key %q", s.path, key)
		}
		s.chats[chatID] = state
	}
	return nil
}

// persist writes the snapshot atomically. Callers hold the mutex.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}

	snap := snapshot{Chats: make(map[string]*chatState, len(s.chats))}
	for chatID, state := range s.chats {
		snap.Chats[strconv.FormatInt(chatID, 10)] = state
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *Store) chat(chatID int64) *chatState {
	state, ok := s.chats[chatID]
	if !ok {
		state = &chatState{}
		s.chats[chatID] = state
	}
	return state
}

func (s *Store) Positions(_ context.Context, chatID int64) ([]core.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.chat(chatID)
	out := make([]core.Position, len(state.Positions))
	for i, p := range state.Positions {
		out[i] = core.Position{
			Price:     core.Money{Cents: p.PriceCents},
			Comment:   p.Comment,
			From:      p.From,
			FromID:    p.FromID,
			Timestamp: p.Timestamp,
		}
	}
	return out, nil
}

func (s *Store) Append(_ context.Context, chatID int64, p core.Position) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.chat(chatID)
	state.Positions = append(state.Positions, position{
		PriceCents: p.Price.Cents,
		Comment:    p.Comment,
		From:       p.From,
		FromID:     p.FromID,
		Timestamp:  p.Timestamp,
	})
	if err := s.persist(); err != nil {
		return 0, err
	}
	return int64(len(state.Positions)), nil
}

func (s *Store) ResetTimestamp(_ context.Context, chatID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.chat(chatID)
	if state.TotalsSince == 0 {
		state.TotalsSince = s.now().Unix()
		if err := s.persist(); err != nil {
			return 0, err
		}
	}
	return state.TotalsSince, nil
}

func (s *Store) SetResetTimestamp(_ context.Context, chatID int64, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat(chatID).TotalsSince = ts
	return s.persist()
}

func (s *Store) Close() error {
	return nil
}
