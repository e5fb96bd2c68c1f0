package store

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	s, err := Open(Config{Type: MemoryBackend, DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
}

func TestOpenSQLite(t *testing.T) {
	s, err := Open(Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "tgexp.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	if _, err := Open(Config{Type: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestBackendIsValid(t *testing.T) {
	cases := []struct {
		b     Backend
		valid bool
	}{
		{MemoryBackend, true},
		{SQLiteBackend, true},
		{"", false},
		{"sheets", false},
	}
	for _, tc := range cases {
		if got := tc.b.IsValid(); got != tc.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tc.b, got, tc.valid)
		}
	}
}
