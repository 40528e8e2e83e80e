package editor

import (
	"github.com/elves/ebind/pkg/lens"
)

// ToggleEditor edits a boolean.
type ToggleEditor[R any] struct {
	editorBase
	v     lens.Var[R, bool]
	label string
}

// NewToggle returns an editor for the boolean bound by v.
func NewToggle[R any](v lens.Var[R, bool], label string) *ToggleEditor[R] {
	return &ToggleEditor[R]{v: v, label: label}
}

// Var returns the var the editor is bound to.
func (t *ToggleEditor[R]) Var() lens.Var[R, bool] { return t.v }

func (*ToggleEditor[R]) Kind() Kind { return PrimitiveKind }

func (t *ToggleEditor[R]) Present() Node {
	n := Node{Kind: PrimitiveKind, Role: "toggle", Label: t.label, Path: t.v.Path()}
	checked, err := t.v.Get()
	if err != nil {
		n.Err = err
		return n
	}
	n.Value = checked
	if checked {
		n.Text = "[x]"
	} else {
		n.Text = "[ ]"
	}
	return n
}

func (t *ToggleEditor[R]) Intent(ev Event) Result {
	switch ev := ev.(type) {
	case Toggle:
		return resultOf(t.v.Path(), t.v.Swap(func(b bool) (bool, error) { return !b, nil }))
	case Assign:
		b, ok := ev.Value.(bool)
		if !ok {
			return Result{Failed, &BadEventError{t.v.Path(), ev, "bool"}}
		}
		return resultOf(t.v.Path(), t.v.Set(b))
	}
	return Result{Status: Unused}
}

func (*ToggleEditor[R]) Close() {}
