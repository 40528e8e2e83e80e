package editor

import (
	"fmt"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/lens"
)

// UnionCase tells a [Union] how to build the child editor for one variant.
type UnionCase[R any, U lens.Tagged] struct {
	Tag   lens.Tag
	build func(v lens.Var[R, U], gate *lens.Gate) Editor
}

// Case returns the case for the variant with the given tag, whose payload is
// of type P. The build function receives a var for the payload and may
// return nil for variants that have nothing to edit.
//
// The payload var becomes stale as soon as the union switches away from the
// variant: from then on, it fails with a [lens.VariantMismatchError] even if
// the union later switches back.
func Case[R any, U lens.Tagged, P any](tag lens.Tag, build func(lens.Var[R, P]) Editor) UnionCase[R, U] {
	return UnionCase[R, U]{tag, func(v lens.Var[R, U], gate *lens.Gate) Editor {
		if build == nil {
			return nil
		}
		return build(lens.Focus(v, lens.Gated(lens.Case[U, P](tag), gate)))
	}}
}

// Union is a container over a tagged union. It has one state per variant:
// whenever the active variant changes, the child editor of the old variant is
// closed, its payload var revoked, and a child editor is built for the new
// one.
type Union[R any, U lens.Tagged] struct {
	editorBase
	v      lens.Var[R, U]
	role   string
	cases  map[lens.Tag]UnionCase[R, U]
	cancel func()

	built  bool
	active lens.Tag
	gate   *lens.Gate
	child  Editor
	// Set when the union can't be read or has no case for the active tag.
	err error
}

// NewUnion returns a union editor for the union bound by v. The initial
// variant is the one active in the cell at construction.
func NewUnion[R any, U lens.Tagged](v lens.Var[R, U], cases ...UnionCase[R, U]) *Union[R, U] {
	u := &Union[R, U]{v: v, role: "union", cases: make(map[lens.Tag]UnionCase[R, U], len(cases))}
	for _, c := range cases {
		u.cases[c.Tag] = c
	}
	// Observe before building any child, so that this union re-derives
	// before its descendants are notified.
	u.cancel = v.Cell().Observe(func(cell.Change[R]) { u.sync() })
	u.sync()
	return u
}

// WithRole sets the role that u presents as, and returns u.
func (u *Union[R, U]) WithRole(role string) *Union[R, U] {
	u.role = role
	return u
}

// Var returns the var the editor is bound to.
func (u *Union[R, U]) Var() lens.Var[R, U] { return u.v }

// Active returns the tag of the active variant and its child editor, which
// may be nil.
func (u *Union[R, U]) Active() (lens.Tag, Editor) { return u.active, u.child }

func (*Union[R, U]) Kind() Kind { return UnionKind }

func (u *Union[R, U]) sync() {
	val, err := u.v.Get()
	if err == nil && u.built && lens.CurrentTag(val) == u.active {
		return
	}
	u.teardown()
	u.built = true
	if err != nil {
		u.err = err
		logger.Debugw("union unreadable", "path", u.v.Path(), "err", err)
		return
	}
	u.active = lens.CurrentTag(val)
	c, ok := u.cases[u.active]
	if !ok {
		u.err = fmt.Errorf("%s: no case for variant %q", u.v.Path(), u.active)
		return
	}
	u.gate = lens.NewGate(u.active)
	u.child = c.build(u.v, u.gate)
	logger.Debugw("union switched", "path", u.v.Path(), "tag", u.active)
}

func (u *Union[R, U]) teardown() {
	if u.gate != nil {
		u.gate.Close()
		u.gate = nil
	}
	if u.child != nil {
		u.child.Close()
		u.child = nil
	}
	u.active = ""
	u.err = nil
}

func (u *Union[R, U]) Present() Node {
	n := Node{Kind: UnionKind, Role: u.role, Path: u.v.Path(), Tag: u.active, Err: u.err}
	if u.child != nil {
		child := u.child.Present()
		child.Key = string(u.active)
		n.Children = []Node{child}
	}
	return n
}

// Select writes val to the bound var, switching the variant if its tag
// differs.
func (u *Union[R, U]) Select(val U) error {
	return u.v.Set(val)
}

func (u *Union[R, U]) Intent(ev Event) Result {
	path := u.v.Path()
	switch ev := ev.(type) {
	case Select:
		val, ok := ev.Value.(U)
		if !ok {
			return Result{Failed, &BadEventError{path, ev, "a variant of the union"}}
		}
		return resultOf(path, u.Select(val))
	case At:
		if ev.Key != "" && lens.Tag(ev.Key) != u.active {
			return resultOf(path, &lens.VariantMismatchError{
				Path: path, Want: lens.Tag(ev.Key), Got: u.active})
		}
		if u.child == nil {
			return Result{Status: Unused}
		}
		return u.child.Intent(ev.Event)
	}
	if u.child != nil {
		return u.child.Intent(ev)
	}
	return Result{Status: Unused}
}

func (u *Union[R, U]) Close() {
	u.cancel()
	u.teardown()
}
