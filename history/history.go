// Package history keeps a local record of recent transcripts.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// DefaultTTL is how long transcripts are retained.
const DefaultTTL = 30 * 24 * time.Hour

const keyPrefix = "transcript:"

// Entry is one completed dictation.
type Entry struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Audio     time.Duration `json:"audio"`
	Latency   time.Duration `json:"latency"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store persists entries in a local badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Append stores an entry with the default TTL. A zero ID and CreatedAt
// are filled in.
func (s *Store) Append(e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	// Keys sort by creation time so iteration order is chronological.
	key := fmt.Sprintf("%s%s:%s", keyPrefix, e.CreatedAt.UTC().Format(time.RFC3339Nano), e.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data).WithTTL(DefaultTTL)
		return txn.SetEntry(entry)
	})
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the prefix range.
		seek := append([]byte(keyPrefix), 0xff)
		for it.Seek(seek); it.Valid() && len(entries) < n; it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
