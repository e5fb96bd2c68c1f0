package core

// DefaultRecentCount is how many entries /last shows without an argument.
const DefaultRecentCount = 10

// RecentSlice returns the last n positions in insertion order. n larger than
// the ledger returns the whole ledger; n of zero returns nothing.
func RecentSlice(positions []Position, n int) []Position {
	if n <= 0 {
		return nil
	}
	if n >= len(positions) {
		return positions
	}
	return positions[len(positions)-n:]
}

// TotalsByUser sums prices per submitter over positions with
// Timestamp >= since. The result is empty when no position qualifies;
// callers must treat that as "no entries", not render an empty table.
func TotalsByUser(positions []Position, since int64) map[int64]Money {
	totals := make(map[int64]Money)
	for _, p := range positions {
		if p.Timestamp < since {
			continue
		}
		t := totals[p.FromID]
		t.Cents += p.Price.Cents
		totals[p.FromID] = t
	}
	return totals
}
