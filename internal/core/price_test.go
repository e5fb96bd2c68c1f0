package core

import "testing"

func TestParserParse(t *testing.T) {
	p := NewParser("€")

	cases := []struct {
		in      string
		price   string
		comment string
		ok      bool
	}{
		{"12,5€ taxi", "12.50", "taxi", true},
		{"12.5€ taxi", "12.50", "taxi", true},
		{"5€ beer", "5.00", "beer", true},
		{"groceries 23.99€", "23.99", "groceries", true},
		{"0€ freebie", "0.00", "freebie", true},
		{"lunch 8€ and a tip", "8.00", "lunch  and a tip", true}, // inner gap survives, only the ends are trimmed
		{"3,1€ coffee", "3.10", "coffee", true},
		{"5€", "", "", false},          // price but no comment
		{"   7.50€   ", "", "", false}, // whitespace-only comment
		{"no price here", "", "", false},
		{"", "", "", false},
		{"100$ wrong currency", "", "", false},
	}
	for _, tc := range cases {
		price, comment, ok := p.Parse(tc.in)
		if ok != tc.ok {
			t.Fatalf("%q: ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if !tc.ok {
			continue
		}
		if price.String() != tc.price {
			t.Errorf("%q: price = %s, want %s", tc.in, price, tc.price)
		}
		if comment != tc.comment {
			t.Errorf("%q: comment = %q, want %q", tc.in, comment, tc.comment)
		}
	}
}

func TestParserFirstOccurrenceWins(t *testing.T) {
	p := NewParser("€")

	price, comment, ok := p.Parse("2€ split of 10€ dinner")
	if !ok {
		t.Fatal("expected ok")
	}
	if price.String() != "2.00" {
		t.Errorf("price = %s, want 2.00", price)
	}
	if comment != "split of 10€ dinner" {
		t.Errorf("comment = %q, want the later amount kept verbatim", comment)
	}
}

func TestParserCustomCurrency(t *testing.T) {
	p := NewParser("$")

	price, comment, ok := p.Parse("4.20$ parking")
	if !ok {
		t.Fatal("expected ok")
	}
	if price.String() != "4.20" || comment != "parking" {
		t.Errorf("got %s / %q", price, comment)
	}
	if _, _, ok := p.Parse("4.20€ parking"); ok {
		t.Error("euro amount should not match a dollar parser")
	}
}

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0", 0, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{1250, "12.50"},
		{99999, "999.99"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %s, want %s", tc.cents, got, tc.want)
		}
	}
}
