// Package cell implements state cells, the storage that all editors are
// ultimately bound to.
//
// A [Cell] owns exactly one value. Reads return the committed value and never
// block. Writes happen in a write scope ([Cell.Mutate]) that works on a draft
// copy and commits it as a whole; at most one write scope may be open on a
// cell at any time. Every commit bumps the cell's revision and notifies the
// cell's observers synchronously, in the order they were registered.
//
// Cells assume a cooperative, single-threaded update cycle like that of a UI
// event loop: nothing in this package ever waits for another writer. A write
// attempted while a scope is open - from inside the scope itself or from
// another goroutine - fails with [ErrReentrantMutation] instead.
package cell

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrReentrantMutation is returned when a write is attempted on a cell
	// that already has an open write scope.
	ErrReentrantMutation = errors.New("reentrant mutation")
	// ErrClosed is returned when writing to a cell that has been closed.
	ErrClosed = errors.New("cell closed")
)

// Change describes a committed mutation. It is passed to observers.
type Change[T any] struct {
	// Revision of the cell after the commit.
	Rev uint64
	Old T
	New T
}

// Cell holds a value of type T. The zero value is not usable; use [New].
type Cell[T any] struct {
	// Guards value and rev.
	mu    sync.RWMutex
	value T
	rev   uint64

	// Set while a write scope is open.
	writing atomic.Bool
	closed  atomic.Bool

	obsMu     sync.Mutex
	observers []*observer[T]
}

type observer[T any] struct {
	f func(Change[T])
	// Guarded by Cell.obsMu.
	cancelled bool
}

// New creates a new cell holding v.
func New[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get returns the committed value. It never fails, and never observes a value
// that is still being written.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Revision returns the number of commits so far.
func (c *Cell[T]) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rev
}

// Set replaces the value.
func (c *Cell[T]) Set(v T) error {
	return c.Mutate(func(p *T) error {
		*p = v
		return nil
	})
}

// Swap replaces the value with the result of calling f with it.
func (c *Cell[T]) Swap(f func(T) T) error {
	return c.Mutate(func(p *T) error {
		*p = f(*p)
		return nil
	})
}

// Mutate opens a write scope and calls f with a draft copy of the committed
// value. If f returns nil, the draft is committed and observers are notified
// before Mutate returns. If f returns an error or panics, nothing is
// committed; the error is returned, and the panic propagates.
//
// The draft is a shallow copy. Code that changes slices or maps reachable from
// the draft must replace them rather than modify them in place; the accessors
// in the lens package do this.
//
// Mutate must not be called again on the same cell from within f; such calls,
// as well as calls to Set and Swap, fail with [ErrReentrantMutation].
func (c *Cell[T]) Mutate(f func(*T) error) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if !c.writing.CompareAndSwap(false, true) {
		return ErrReentrantMutation
	}
	open := true
	defer func() {
		if open {
			c.writing.Store(false)
		}
	}()

	old := c.Get()
	draft := old
	if err := f(&draft); err != nil {
		return err
	}

	c.mu.Lock()
	c.value = draft
	c.rev++
	rev := c.rev
	c.mu.Unlock()

	// Close the scope before notifying, so that observers can read the new
	// value and write to this cell in turn.
	open = false
	c.writing.Store(false)
	c.notify(Change[T]{Rev: rev, Old: old, New: draft})
	return nil
}

// Writing reports whether a write scope is currently open.
func (c *Cell[T]) Writing() bool { return c.writing.Load() }

// Observe registers f to be called after every commit. It returns a function
// that cancels the registration; cancelling takes effect immediately, even
// in the middle of a notification round.
func (c *Cell[T]) Observe(f func(Change[T])) (cancel func()) {
	o := &observer[T]{f: f}
	c.obsMu.Lock()
	if !c.closed.Load() {
		c.observers = append(c.observers, o)
	}
	c.obsMu.Unlock()
	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		if o.cancelled {
			return
		}
		o.cancelled = true
		for i, o2 := range c.observers {
			if o2 == o {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				break
			}
		}
	}
}

func (c *Cell[T]) notify(ch Change[T]) {
	c.obsMu.Lock()
	observers := c.observers
	c.obsMu.Unlock()
	for _, o := range observers {
		c.obsMu.Lock()
		cancelled := o.cancelled
		c.obsMu.Unlock()
		if !cancelled {
			o.f(ch)
		}
	}
}

// Close tears down the cell: all observers are dropped and further writes
// fail with [ErrClosed]. Get keeps returning the last committed value.
func (c *Cell[T]) Close() {
	c.closed.Store(true)
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	for _, o := range c.observers {
		o.cancelled = true
	}
	c.observers = nil
}

// Closed reports whether Close has been called.
func (c *Cell[T]) Closed() bool { return c.closed.Load() }
