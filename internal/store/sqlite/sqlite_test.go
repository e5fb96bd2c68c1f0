package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tgexp/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPosition(fromID int64, cents int64, ts int64) core.Position {
	return core.Position{
		Price:     core.Money{Cents: cents},
		Comment:   "groceries",
		From:      "Bob",
		FromID:    fromID,
		Timestamp: ts,
	}
}

func TestAppendAndPositionsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id1, err := s.Append(ctx, 10, testPosition(1, 100, 11))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.Append(ctx, 10, testPosition(2, 200, 22))
	if err != nil {
		t.Fatal(err)
	}
	if id2 <= id1 {
		t.Fatalf("reference ids not increasing: %d then %d", id1, id2)
	}

	positions, err := s.Positions(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}
	if positions[0].FromID != 1 || positions[1].FromID != 2 {
		t.Errorf("insertion order not preserved: %+v", positions)
	}
	if positions[0].Price.Cents != 100 || positions[0].Comment != "groceries" {
		t.Errorf("round-trip mismatch: %+v", positions[0])
	}
}

func TestPositionsEmptyForNewChat(t *testing.T) {
	s := openTestStore(t)
	positions, err := s.Positions(context.Background(), 99)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 0 {
		t.Fatalf("expected empty ledger, got %d", len(positions))
	}
}

func TestChatsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Append(ctx, 1, testPosition(1, 100, 1)); err != nil {
		t.Fatal(err)
	}
	other, err := s.Positions(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatal("ledger leaked across chats")
	}
}

func TestResetTimestampLazyInitPersists(t *testing.T) {
	s := openTestStore(t)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	ctx := context.Background()

	ts, err := s.ResetTimestamp(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if ts != 1700000000 {
		t.Fatalf("lazy init = %d", ts)
	}

	s.now = func() time.Time { return time.Unix(1800000000, 0) }
	ts, err = s.ResetTimestamp(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if ts != 1700000000 {
		t.Fatalf("second read = %d, want the persisted initialization", ts)
	}
}

func TestSetResetTimestampDoesNotTouchPositions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		if _, err := s.Append(ctx, 7, testPosition(i, i*100, i)); err != nil {
			t.Fatal(err)
		}
	}
	before, _ := s.Positions(ctx, 7)

	if err := s.SetResetTimestamp(ctx, 7, 12345); err != nil {
		t.Fatal(err)
	}

	after, _ := s.Positions(ctx, 7)
	if len(after) != len(before) {
		t.Fatalf("position count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("position %d changed", i)
		}
	}
	ts, _ := s.ResetTimestamp(ctx, 7)
	if ts != 12345 {
		t.Fatalf("reset timestamp = %d, want 12345", ts)
	}
}

func TestGetPosition(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Append(ctx, 3, testPosition(9, 555, 77))
	if err != nil {
		t.Fatal(err)
	}

	p, chatID, err := s.GetPosition(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if chatID != 3 {
		t.Errorf("chat id = %d, want 3", chatID)
	}
	if p.FromID != 9 || p.Price.Cents != 555 || p.Timestamp != 77 {
		t.Errorf("position mismatch: %+v", p)
	}

	if _, _, err := s.GetPosition(ctx, id+1000); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestAppendRejectsInvalidPosition(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Append(context.Background(), 1, core.Position{}); err == nil {
		t.Fatal("expected validation error")
	}
}
