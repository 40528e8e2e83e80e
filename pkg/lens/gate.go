package lens

import "sync/atomic"

// Gate revokes accessors. Containers that destroy a child editor close the
// gate of the accessor they derived for it, so that a stale reference held
// anywhere fails loudly instead of reading whatever now lives at its path.
type Gate struct {
	tag    Tag
	closed atomic.Bool
}

// NewGate returns an open gate. The tag is reported in errors.
func NewGate(tag Tag) *Gate { return &Gate{tag: tag} }

// Close closes the gate. It is idempotent.
func (g *Gate) Close() { g.closed.Store(true) }

// Closed reports whether the gate has been closed.
func (g *Gate) Closed() bool { return g.closed.Load() }

type gated[R, L any] struct {
	acc  Accessor[R, L]
	gate *Gate
}

// Gated wraps acc so that it fails with a stale *VariantMismatchError once
// gate is closed.
func Gated[R, L any](acc Accessor[R, L], gate *Gate) Accessor[R, L] {
	return gated[R, L]{acc, gate}
}

func (g gated[R, L]) stale() error {
	return &VariantMismatchError{Path: g.acc.String(), Want: g.gate.tag, Stale: true}
}

func (g gated[R, L]) Read(r R) (L, error) {
	if g.gate.Closed() {
		var zero L
		return zero, g.stale()
	}
	return g.acc.Read(r)
}

func (g gated[R, L]) Write(r R, l L) (R, error) {
	if g.gate.Closed() {
		return r, g.stale()
	}
	return g.acc.Write(r, l)
}

func (g gated[R, L]) String() string { return g.acc.String() }
