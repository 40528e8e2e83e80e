// Package testutil contains common test utilities.
package testutil

import (
	"bytes"
	"io"
	"sync"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/logutil"
)

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// Set assigns v to *p and restores the old value when the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// Recorder records the changes committed to a cell.
type Recorder[T any] struct {
	mu      sync.Mutex
	changes []cell.Change[T]
}

// Record starts recording the changes of c. Recording stops when the test
// finishes.
func Record[T any](t Cleanuper, c *cell.Cell[T]) *Recorder[T] {
	r := &Recorder[T]{}
	cancel := c.Observe(func(ch cell.Change[T]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.changes = append(r.changes, ch)
	})
	t.Cleanup(cancel)
	return r
}

// Changes returns all changes recorded so far.
func (r *Recorder[T]) Changes() []cell.Change[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cell.Change[T](nil), r.changes...)
}

// Values returns the committed values recorded so far.
func (r *Recorder[T]) Values() []T {
	var vs []T
	for _, ch := range r.Changes() {
		vs = append(vs, ch.New)
	}
	return vs
}

// CaptureLog redirects the output of all loggers to a buffer for the rest of
// the test.
func CaptureLog(t Cleanuper) *bytes.Buffer {
	var buf bytes.Buffer
	logutil.SetOutput(&syncWriter{w: &buf})
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })
	return &buf
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}
