// Package store persists the values of cells in a bbolt database.
//
// Values are stored as YAML snapshots under string keys. Every snapshot saved
// through [DBStore.Save] is also appended to a journal kept per key, so that
// earlier values can be inspected and restored.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/elves/ebind/pkg/errutil"
	"github.com/elves/ebind/pkg/logutil"
)

var logger = logutil.GetLogger("store")

const (
	bucketSnapshot = "snapshot"
	bucketJournal  = "journal"
)

// Functions that initialize the database, keyed by description. Files of this
// package register them in init.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the interface of the store.
type DBStore interface {
	// Save writes the YAML encoding of v under key, and appends it to the
	// journal of key. It returns the sequence number of the journal entry.
	Save(key string, v any) (int, error)
	// Load decodes the snapshot under key into v.
	Load(key string, v any) error
	// Delete deletes the snapshot and the journal of key.
	Delete(key string) error
	// Keys returns the keys with a snapshot, in lexical order.
	Keys() ([]string, error)

	// Entries returns the journal entries of key with sequence numbers in
	// [from, upto). Negative bounds are treated as 0.
	Entries(key string, from, upto int) ([]Entry, error)
	// LoadEntry decodes the journal entry of key with the given sequence
	// number into v.
	LoadEntry(key string, seq int, v any) error

	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database at the given path, creating it if it doesn't
// exist.
func NewStore(path string) (DBStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errutil.Multi(err, db.Close())
	}
	logger.Debugw("store opened", "path", path)
	return &dbStore{db}, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
