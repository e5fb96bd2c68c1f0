package quotes

import "testing"

func TestRandomReturnsKnownQuote(t *testing.T) {
	known := make(map[string]bool)
	for _, q := range All() {
		known[q] = true
	}
	for i := 0; i < 100; i++ {
		if q := Random(); !known[q] {
			t.Fatalf("unknown quote returned: %q", q)
		}
	}
}

func TestAllIsACopy(t *testing.T) {
	a := All()
	a[0] = "mutated"
	if All()[0] == "mutated" {
		t.Fatal("All must not expose the internal list")
	}
}

func TestListNotEmpty(t *testing.T) {
	if len(All()) == 0 {
		t.Fatal("quote list must not be empty")
	}
}
