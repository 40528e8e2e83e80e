package store

import (
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"
)

// ErrNoSnapshot is returned by Load when there is no snapshot under a key.
var ErrNoSnapshot = errors.New("no such snapshot")

func init() {
	initDB["initialize snapshot table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshot))
		return err
	}
}

func (s *dbStore) Save(key string, v any) (int, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", key, err)
	}
	var seq int
	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketSnapshot)).Put([]byte(key), data); err != nil {
			return err
		}
		var err error
		seq, err = addEntry(tx, key, data)
		return err
	})
	if err != nil {
		return 0, err
	}
	logger.Debugw("snapshot saved", "key", key, "seq", seq, "bytes", len(data))
	return seq, nil
}

func (s *dbStore) Load(key string, v any) error {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		stored := tx.Bucket([]byte(bucketSnapshot)).Get([]byte(key))
		if stored == nil {
			return ErrNoSnapshot
		}
		// Only valid during the transaction.
		data = append([]byte(nil), stored...)
		return nil
	})
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *dbStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketSnapshot)).Delete([]byte(key)); err != nil {
			return err
		}
		return deleteJournal(tx, key)
	})
}

func (s *dbStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshot)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
