package core

import "testing"

func pos(fromID int64, cents int64, ts int64) Position {
	return Position{
		Price:     Money{Cents: cents},
		Comment:   "x",
		From:      "user",
		FromID:    fromID,
		Timestamp: ts,
	}
}

func TestRecentSlice(t *testing.T) {
	ledger := []Position{pos(1, 100, 10), pos(2, 200, 20), pos(1, 300, 30)}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"fewer than length", 2, 2},
		{"exact length", 3, 3},
		{"more than length", 10, 3},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecentSlice(ledger, tt.n)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			// Insertion order preserved: last element of a non-empty
			// slice is always the newest entry.
			if len(got) > 0 && got[len(got)-1].Timestamp != 30 {
				t.Errorf("last element timestamp = %d, want 30", got[len(got)-1].Timestamp)
			}
		})
	}
}

func TestRecentSliceEmptyLedger(t *testing.T) {
	if got := RecentSlice(nil, 10); len(got) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(got))
	}
}

func TestTotalsByUser(t *testing.T) {
	ledger := []Position{
		pos(1, 200, 100),
		pos(1, 300, 200),
		pos(2, 100, 50),
	}

	totals := TotalsByUser(ledger, 100)
	if len(totals) != 1 {
		t.Fatalf("expected 1 user, got %d", len(totals))
	}
	if got := totals[1]; got.Cents != 500 {
		t.Errorf("user 1 total = %d cents, want 500", got.Cents)
	}
	if _, ok := totals[2]; ok {
		t.Error("user 2 entry predates the baseline, should be excluded")
	}
}

func TestTotalsByUserBoundary(t *testing.T) {
	// Timestamp equal to the baseline is included.
	totals := TotalsByUser([]Position{pos(7, 150, 100)}, 100)
	if got := totals[7]; got.Cents != 150 {
		t.Errorf("boundary entry total = %d cents, want 150", got.Cents)
	}
}

func TestTotalsByUserEmpty(t *testing.T) {
	totals := TotalsByUser([]Position{pos(1, 100, 10)}, 1000)
	if len(totals) != 0 {
		t.Fatalf("expected empty map, got %v", totals)
	}
}
