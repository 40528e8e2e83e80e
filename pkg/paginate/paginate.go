// Package paginate provides bidirectional cursors.
//
// A [Paginator] is like an iterator that can also go back: Next yields the
// element after the cursor and moves past it, Previous yields the element
// before the cursor and moves back over it. Paginators are lazy; adapters
// like [Map] do no work until the cursor moves.
package paginate

// Paginator is a bidirectional cursor over elements of type T.
type Paginator[T any] interface {
	// Next returns the element after the cursor and advances. At the end, it
	// returns false and the cursor stays put.
	Next() (T, bool)
	// Previous returns the element before the cursor and moves back. At the
	// start, it returns false and the cursor stays put.
	Previous() (T, bool)
}

type slicePaginator[T any] struct {
	s []T
	i int
}

// Slice returns a paginator over the elements of s. The slice is not copied.
func Slice[T any](s []T) Paginator[T] { return &slicePaginator[T]{s: s} }

func (p *slicePaginator[T]) Next() (T, bool) {
	if p.i >= len(p.s) {
		var zero T
		return zero, false
	}
	p.i++
	return p.s[p.i-1], true
}

func (p *slicePaginator[T]) Previous() (T, bool) {
	if p.i == 0 {
		var zero T
		return zero, false
	}
	p.i--
	return p.s[p.i], true
}

// Once returns a paginator over the single element v.
func Once[T any](v T) Paginator[T] { return Slice([]T{v}) }

// Chunks returns a paginator over consecutive chunks of s of the given size.
// The last chunk may be shorter. It panics if size is not positive.
func Chunks[T any](s []T, size int) Paginator[[]T] {
	if size <= 0 {
		panic("paginate: chunk size must be positive")
	}
	chunks := make([][]T, 0, (len(s)+size-1)/size)
	for lo := 0; lo < len(s); lo += size {
		chunks = append(chunks, s[lo:min(lo+size, len(s)):min(lo+size, len(s))])
	}
	return Slice(chunks)
}

type mapPaginator[T, U any] struct {
	p Paginator[T]
	f func(T) U
}

// Map returns a paginator that yields the elements of p transformed by f.
func Map[T, U any](p Paginator[T], f func(T) U) Paginator[U] {
	return mapPaginator[T, U]{p, f}
}

func (m mapPaginator[T, U]) Next() (U, bool)     { return apply(m.p.Next, m.f) }
func (m mapPaginator[T, U]) Previous() (U, bool) { return apply(m.p.Previous, m.f) }

func apply[T, U any](step func() (T, bool), f func(T) U) (U, bool) {
	v, ok := step()
	if !ok {
		var zero U
		return zero, false
	}
	return f(v), true
}

// Indexed is an element yielded by [Enumerate].
type Indexed[T any] struct {
	Index int
	Value T
}

type enumeratePaginator[T any] struct {
	p Paginator[T]
	// Index of the element that Next would yield.
	i int
}

// Enumerate returns a paginator that yields the elements of p along with
// their positions.
func Enumerate[T any](p Paginator[T]) Paginator[Indexed[T]] {
	return &enumeratePaginator[T]{p: p}
}

func (e *enumeratePaginator[T]) Next() (Indexed[T], bool) {
	v, ok := e.p.Next()
	if !ok {
		return Indexed[T]{}, false
	}
	e.i++
	return Indexed[T]{e.i - 1, v}, true
}

func (e *enumeratePaginator[T]) Previous() (Indexed[T], bool) {
	v, ok := e.p.Previous()
	if !ok {
		return Indexed[T]{}, false
	}
	e.i--
	return Indexed[T]{e.i, v}, true
}

type chainPaginator[T any] struct {
	a, b Paginator[T]
	inB  bool
}

// Chain returns a paginator that yields the elements of a followed by those
// of b.
func Chain[T any](a, b Paginator[T]) Paginator[T] {
	return &chainPaginator[T]{a: a, b: b}
}

func (c *chainPaginator[T]) Next() (T, bool) {
	if !c.inB {
		if v, ok := c.a.Next(); ok {
			return v, true
		}
		c.inB = true
	}
	return c.b.Next()
}

func (c *chainPaginator[T]) Previous() (T, bool) {
	if c.inB {
		if v, ok := c.b.Previous(); ok {
			return v, true
		}
		c.inB = false
	}
	return c.a.Previous()
}

// Collect drains p forwards and returns the elements in order.
func Collect[T any](p Paginator[T]) []T {
	var s []T
	for {
		v, ok := p.Next()
		if !ok {
			return s
		}
		s = append(s, v)
	}
}
