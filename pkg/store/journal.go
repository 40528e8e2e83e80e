package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

// ErrNoEntry is returned by LoadEntry when there is no such journal entry.
var ErrNoEntry = errors.New("no such journal entry")

// Entry is an entry in the journal of a key.
type Entry struct {
	Seq  int
	YAML string
}

func init() {
	initDB["initialize journal table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketJournal))
		return err
	}
}

// addEntry appends data to the journal of key. Sequence numbers start at 1.
func addEntry(tx *bolt.Tx, key string, data []byte) (int, error) {
	b, err := tx.Bucket([]byte(bucketJournal)).CreateBucketIfNotExists([]byte(key))
	if err != nil {
		return 0, err
	}
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	return int(seq), b.Put(marshalSeq(seq), data)
}

func deleteJournal(tx *bolt.Tx, key string) error {
	err := tx.Bucket([]byte(bucketJournal)).DeleteBucket([]byte(key))
	if errors.Is(err, bolt.ErrBucketNotFound) {
		return nil
	}
	return err
}

func (s *dbStore) Entries(key string, from, upto int) ([]Entry, error) {
	from, upto = max(from, 0), max(upto, 0)
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketJournal)).Bucket([]byte(key))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			entries = append(entries, Entry{Seq: int(unmarshalSeq(k)), YAML: string(v)})
		}
		return nil
	})
	return entries, err
}

func (s *dbStore) LoadEntry(key string, seq int, v any) error {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketJournal)).Bucket([]byte(key))
		if b == nil {
			return ErrNoEntry
		}
		stored := b.Get(marshalSeq(uint64(seq)))
		if stored == nil {
			return ErrNoEntry
		}
		data = append([]byte(nil), stored...)
		return nil
	})
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s#%d: %w", key, seq, err)
	}
	return nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
