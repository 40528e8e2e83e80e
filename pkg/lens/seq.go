package lens

import (
	"strconv"

	"golang.org/x/exp/slices"
)

type index[E any] int

// Index returns an accessor for the i-th element of a slice.
func Index[E any](i int) Accessor[[]E, E] { return index[E](i) }

func (i index[E]) Read(s []E) (E, error) {
	if int(i) < 0 || int(i) >= len(s) {
		var zero E
		return zero, &IndexError{Path: i.String(), Index: int(i), Len: len(s)}
	}
	return s[i], nil
}

func (i index[E]) Write(s []E, e E) ([]E, error) {
	if int(i) < 0 || int(i) >= len(s) {
		return s, &IndexError{Path: i.String(), Index: int(i), Len: len(s)}
	}
	s = slices.Clone(s)
	s[i] = e
	return s, nil
}

func (i index[E]) String() string { return "[" + strconv.Itoa(int(i)) + "]" }

type window[E any] struct {
	bounds func(n int) (lo, hi int)
}

// Window returns an accessor for a contiguous part of a slice. The bounds
// function is called with the length of the slice each time the accessor is
// used, and returns the half-open range of the window; it is clamped to the
// slice.
//
// Writing replaces the window with the new leaf, which may have a different
// length. The accessor laws hold for leaves of the same length as the window.
func Window[E any](bounds func(n int) (lo, hi int)) Accessor[[]E, []E] {
	return window[E]{bounds}
}

func (w window[E]) clamp(n int) (int, int) {
	lo, hi := w.bounds(n)
	lo = max(0, min(lo, n))
	hi = max(lo, min(hi, n))
	return lo, hi
}

func (w window[E]) Read(s []E) ([]E, error) {
	lo, hi := w.clamp(len(s))
	return slices.Clone(s[lo:hi]), nil
}

func (w window[E]) Write(s []E, part []E) ([]E, error) {
	lo, hi := w.clamp(len(s))
	out := make([]E, 0, len(s)-(hi-lo)+len(part))
	out = append(out, s[:lo]...)
	out = append(out, part...)
	return append(out, s[hi:]...), nil
}

func (window[E]) String() string { return "[window]" }
