package editor

import (
	"github.com/elves/ebind/pkg/lens"
)

// ActionSpec specifies an [ActionEditor].
type ActionSpec[L any] struct {
	Label string
	// Do computes the new value from the current one. A [ValidationError]
	// (see [Reject]) rejects the activation; other errors fail it. Either way
	// nothing is written.
	Do func(L) (L, error)
	// Enabled reports whether the action can be activated. If nil, the action
	// is always enabled.
	Enabled func(L) bool
}

// ActionEditor is a button that applies a function to the value it is bound
// to.
type ActionEditor[R, L any] struct {
	editorBase
	v    lens.Var[R, L]
	spec ActionSpec[L]
}

// NewAction returns an action editor bound to v.
func NewAction[R, L any](v lens.Var[R, L], spec ActionSpec[L]) *ActionEditor[R, L] {
	return &ActionEditor[R, L]{v: v, spec: spec}
}

// Var returns the var the editor is bound to.
func (a *ActionEditor[R, L]) Var() lens.Var[R, L] { return a.v }

func (*ActionEditor[R, L]) Kind() Kind { return PrimitiveKind }

func (a *ActionEditor[R, L]) enabled(l L) bool {
	return a.spec.Enabled == nil || a.spec.Enabled(l)
}

func (a *ActionEditor[R, L]) Present() Node {
	n := Node{Kind: PrimitiveKind, Role: "action", Label: a.spec.Label, Path: a.v.Path(), Text: a.spec.Label}
	l, err := a.v.Get()
	if err != nil {
		n.Err = err
		return n
	}
	n.Value = a.enabled(l)
	return n
}

func (a *ActionEditor[R, L]) Intent(ev Event) Result {
	if _, ok := ev.(Activate); !ok {
		return Result{Status: Unused}
	}
	path := a.v.Path()
	err := a.v.Swap(func(l L) (L, error) {
		if !a.enabled(l) {
			return l, Reject("%s is disabled", a.spec.Label)
		}
		if a.spec.Do == nil {
			return l, nil
		}
		return a.spec.Do(l)
	})
	return resultOf(path, withPath(err, path, ""))
}

func (*ActionEditor[R, L]) Close() {}
