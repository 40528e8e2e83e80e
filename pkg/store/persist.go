package store

import (
	"errors"

	"github.com/elves/ebind/pkg/cell"
)

// Restore sets the value of c to the snapshot under key. It reports whether
// there was a snapshot; if not, c is left alone.
func Restore[T any](st DBStore, key string, c *cell.Cell[T]) (bool, error) {
	var v T
	err := st.Load(key, &v)
	if errors.Is(err, ErrNoSnapshot) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, c.Set(v)
}

// Persist saves the value of c under key now and after every commit, until
// the returned function is called. Errors saving after commits are logged.
func Persist[T any](st DBStore, key string, c *cell.Cell[T]) (cancel func(), err error) {
	if _, err := st.Save(key, c.Get()); err != nil {
		return nil, err
	}
	return c.Observe(func(ch cell.Change[T]) {
		if _, err := st.Save(key, ch.New); err != nil {
			logger.Errorw("failed to persist", "key", key, "rev", ch.Rev, "err", err)
		}
	}), nil
}
