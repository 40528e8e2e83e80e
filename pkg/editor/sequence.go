package editor

import (
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/lens"
)

// SequenceSpec specifies a [Sequence].
type SequenceSpec[R, E any] struct {
	// KeyOf derives the identity of an element from the element itself. If
	// nil, the sequence assigns identities itself and keeps track of them
	// across the structural changes it makes (Insert, Remove, Move); changes
	// made directly to the bound slice are then treated positionally.
	KeyOf func(E) string
	// Build builds the editor for an element. The var keeps referring to the
	// same element when other elements are inserted, removed or moved, and
	// fails with [lens.ErrIndexOutOfRange] once the element is gone.
	Build func(key string, v lens.Var[R, E]) Editor
}

// Sequence is a container over a slice. It keeps one child editor per
// element, keyed by the identity of the element, and reconciles them with the
// slice after every commit:
//
//   - editors of elements that are gone are closed;
//   - editors are built for new elements;
//   - editors of elements that stay are kept, even if the elements moved.
type Sequence[R, E any] struct {
	editorBase
	v      lens.Var[R, []E]
	role   string
	spec   SequenceSpec[R, E]
	cancel func()

	keys     []string
	children map[string]Editor
	// Keys planned by a structural change in progress.
	planned []string
	// Set when the slice can't be read.
	err error
}

// NewSequence returns a sequence editor for the slice bound by v.
func NewSequence[R, E any](v lens.Var[R, []E], spec SequenceSpec[R, E]) *Sequence[R, E] {
	s := &Sequence[R, E]{v: v, role: "sequence", spec: spec, children: make(map[string]Editor)}
	s.cancel = v.Cell().Observe(func(cell.Change[R]) { s.reconcile() })
	s.reconcile()
	return s
}

// WithRole sets the role that s presents as, and returns s.
func (s *Sequence[R, E]) WithRole(role string) *Sequence[R, E] {
	s.role = role
	return s
}

// Var returns the var the editor is bound to.
func (s *Sequence[R, E]) Var() lens.Var[R, []E] { return s.v }

func (*Sequence[R, E]) Kind() Kind { return SequenceKind }

// Keys returns the keys of the elements, in order.
func (s *Sequence[R, E]) Keys() []string { return slices.Clone(s.keys) }

// Len returns the number of elements.
func (s *Sequence[R, E]) Len() int { return len(s.keys) }

// Child returns the editor of the element with the given key, or nil.
func (s *Sequence[R, E]) Child(key string) Editor { return s.children[key] }

// IndexOf returns the position of the element with the given key, or -1.
func (s *Sequence[R, E]) IndexOf(key string) int { return slices.Index(s.keys, key) }

// derivedKeys returns the keys derived with KeyOf. The n-th repetition of a
// key gets the suffix "#n".
func (s *Sequence[R, E]) derivedKeys(elems []E) (keys []string, dup bool) {
	keys = make([]string, len(elems))
	seen := make(map[string]int, len(elems))
	for i, e := range elems {
		key := s.spec.KeyOf(e)
		n := seen[key]
		seen[key]++
		if n > 0 {
			dup = true
			key += "#" + strconv.Itoa(n)
		}
		keys[i] = key
	}
	return keys, dup
}

func (s *Sequence[R, E]) keysOf(elems []E) []string {
	if s.spec.KeyOf != nil {
		keys, dup := s.derivedKeys(elems)
		if dup {
			logger.Warnw("duplicate element keys", "path", s.v.Path())
		}
		return keys
	}
	// Without a structural change through the editor, identities stay with
	// positions. A windowed var may read more or fewer elements than were
	// planned; the surplus is dropped and the rest get new identities.
	known := s.keys
	if s.planned != nil {
		known = s.planned
	}
	keys := slices.Clone(known[:min(len(known), len(elems))])
	for len(keys) < len(elems) {
		keys = append(keys, uuid.NewString())
	}
	return keys
}

func (s *Sequence[R, E]) reconcile() {
	elems, err := s.v.Get()
	if err != nil {
		s.err = err
		s.closeChildren()
		s.keys = nil
		logger.Debugw("sequence unreadable", "path", s.v.Path(), "err", err)
		return
	}
	s.err = nil
	keys := s.keysOf(elems)
	s.planned = nil

	alive := make(map[string]bool, len(keys))
	for _, key := range keys {
		alive[key] = true
	}
	removed := 0
	for _, key := range s.keys {
		if !alive[key] {
			if child := s.children[key]; child != nil {
				child.Close()
			}
			delete(s.children, key)
			removed++
		}
	}
	// Children built below resolve their element through s.keys.
	s.keys = keys
	added := 0
	for _, key := range keys {
		if _, ok := s.children[key]; !ok {
			s.children[key] = s.build(key)
			added++
		}
	}
	if removed > 0 || added > 0 {
		logger.Debugw("sequence reconciled", "path", s.v.Path(), "added", added, "removed", removed)
	}
}

func (s *Sequence[R, E]) build(key string) Editor {
	if s.spec.Build == nil {
		return nil
	}
	return s.spec.Build(key, lens.Focus(s.v, s.elem(key)))
}

// elem returns an accessor for the element with the given key.
func (s *Sequence[R, E]) elem(key string) lens.Accessor[[]E, E] {
	path := "[#" + key + "]"
	locate := func(elems []E) (int, error) {
		i := -1
		if s.spec.KeyOf != nil {
			keys, _ := s.derivedKeys(elems)
			i = slices.Index(keys, key)
		} else if j := slices.Index(s.keys, key); j < len(elems) {
			i = j
		}
		if i < 0 {
			return -1, &lens.IndexError{Path: path, Index: -1, Len: len(elems), Key: key}
		}
		return i, nil
	}
	return lens.Func(path,
		func(elems []E) (E, error) {
			i, err := locate(elems)
			if err != nil {
				var zero E
				return zero, err
			}
			return elems[i], nil
		},
		func(elems []E, e E) ([]E, error) {
			i, err := locate(elems)
			if err != nil {
				return elems, err
			}
			return lens.Index[E](i).Write(elems, e)
		})
}

// Refresh reconciles the children with the slice. It is only needed when the
// result of reading the var can change without a commit to its cell, like
// when the var goes through an accessor that depends on another cell.
func (s *Sequence[R, E]) Refresh() { s.reconcile() }

// Rebuild closes all children and builds new ones. Unless KeyOf is set, the
// elements get new identities.
func (s *Sequence[R, E]) Rebuild() {
	s.closeChildren()
	s.keys = nil
	s.planned = nil
	s.reconcile()
}

func (s *Sequence[R, E]) closeChildren() {
	for _, key := range s.keys {
		if child := s.children[key]; child != nil {
			child.Close()
		}
		delete(s.children, key)
	}
}

// change applies a structural change to the slice in one write scope. The
// change function returns the new slice and, for sequences without KeyOf,
// the keys of the new slice.
func (s *Sequence[R, E]) change(f func(elems []E, keys []string) ([]E, []string, error)) error {
	defer func() { s.planned = nil }()
	return s.v.Swap(func(elems []E) ([]E, error) {
		keys := s.keys
		if len(elems) != len(keys) {
			// The slice changed without a commit and Refresh wasn't called.
			keys = s.keysOf(elems)
		}
		newElems, newKeys, err := f(slices.Clone(elems), slices.Clone(keys))
		if err != nil {
			return elems, err
		}
		if s.spec.KeyOf == nil {
			s.planned = newKeys
		}
		return newElems, nil
	})
}

func (s *Sequence[R, E]) outOfRange(i, n int) error {
	return &lens.IndexError{Path: s.v.Path(), Index: i, Len: n}
}

// Insert inserts e at position i, which may be equal to the length of the
// slice.
func (s *Sequence[R, E]) Insert(i int, e E) error {
	return s.change(func(elems []E, keys []string) ([]E, []string, error) {
		if i < 0 || i > len(elems) {
			return nil, nil, s.outOfRange(i, len(elems)+1)
		}
		return slices.Insert(elems, i, e), slices.Insert(keys, i, uuid.NewString()), nil
	})
}

// Append appends e.
func (s *Sequence[R, E]) Append(e E) error {
	return s.change(func(elems []E, keys []string) ([]E, []string, error) {
		return append(elems, e), append(keys, uuid.NewString()), nil
	})
}

// Remove removes the element with the given key.
func (s *Sequence[R, E]) Remove(key string) error {
	return s.change(func(elems []E, keys []string) ([]E, []string, error) {
		i := slices.Index(keys, key)
		if i < 0 {
			return nil, nil, &lens.IndexError{Path: s.v.Path(), Index: -1, Len: len(elems), Key: key}
		}
		return slices.Delete(elems, i, i+1), slices.Delete(keys, i, i+1), nil
	})
}

// Move moves the element at position from to position to. The editor of the
// element is kept.
func (s *Sequence[R, E]) Move(from, to int) error {
	return s.change(func(elems []E, keys []string) ([]E, []string, error) {
		n := len(elems)
		if from < 0 || from >= n {
			return nil, nil, s.outOfRange(from, n)
		}
		if to < 0 || to >= n {
			return nil, nil, s.outOfRange(to, n)
		}
		return move(elems, from, to), move(keys, from, to), nil
	})
}

func move[T any](s []T, from, to int) []T {
	v := s[from]
	s = slices.Delete(s, from, from+1)
	return slices.Insert(s, to, v)
}

func (s *Sequence[R, E]) Present() Node {
	n := Node{Kind: SequenceKind, Role: s.role, Path: s.v.Path(), Err: s.err}
	for i, key := range s.keys {
		var child Node
		if e := s.children[key]; e != nil {
			child = e.Present()
		} else {
			child = Node{Kind: PrimitiveKind}
		}
		child.Key = key
		child.Attrs = withAttr(child.Attrs, "index", i)
		n.Children = append(n.Children, child)
	}
	return n
}

func withAttr(attrs map[string]any, k string, v any) map[string]any {
	if attrs == nil {
		attrs = make(map[string]any)
	}
	attrs[k] = v
	return attrs
}

func (s *Sequence[R, E]) Intent(ev Event) Result {
	path := s.v.Path()
	switch ev := ev.(type) {
	case At:
		child, ok := s.children[ev.Key]
		if !ok {
			return resultOf(path, &lens.IndexError{Path: path, Index: -1, Len: len(s.keys), Key: ev.Key})
		}
		if child == nil {
			return Result{Status: Unused}
		}
		return child.Intent(ev.Event)
	case AtIndex:
		if ev.Index < 0 || ev.Index >= len(s.keys) {
			return resultOf(path, s.outOfRange(ev.Index, len(s.keys)))
		}
		return s.Intent(At{s.keys[ev.Index], ev.Event})
	case Insert:
		e, ok := ev.Value.(E)
		if !ok {
			return Result{Failed, &BadEventError{path, ev, "an element of the sequence"}}
		}
		return resultOf(path, s.Insert(ev.Index, e))
	case Append:
		e, ok := ev.Value.(E)
		if !ok {
			return Result{Failed, &BadEventError{path, ev, "an element of the sequence"}}
		}
		return resultOf(path, s.Append(e))
	case Remove:
		return resultOf(path, s.Remove(ev.Key))
	case Move:
		return resultOf(path, s.Move(ev.From, ev.To))
	}
	return Result{Status: Unused}
}

func (s *Sequence[R, E]) Close() {
	s.cancel()
	s.closeChildren()
	s.keys = nil
}
