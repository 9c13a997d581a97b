package history

import (
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestStore_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := s.Append(Entry{
			Text:      fmt.Sprintf("transcript %d", i),
			Audio:     time.Duration(i) * time.Second,
			Latency:   500 * time.Millisecond,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent(3) returned %d entries, want 3", len(entries))
	}

	// Newest first.
	for i, want := range []string{"transcript 4", "transcript 3", "transcript 2"} {
		if entries[i].Text != want {
			t.Errorf("entries[%d].Text = %q, want %q", i, entries[i].Text, want)
		}
	}
	if entries[0].ID == "" {
		t.Error("Append did not assign an ID")
	}
}

func TestStore_RecentMoreThanStored(t *testing.T) {
	s := openTestStore(t)

	if err := s.Append(Entry{Text: "only one"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "only one" {
		t.Errorf("Recent(10) = %+v, want single entry", entries)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("Append did not assign CreatedAt")
	}
}

func TestStore_RecentEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() on empty store = %+v, want none", entries)
	}
}
