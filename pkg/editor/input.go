package editor

import (
	"fmt"
	"reflect"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/elves/ebind/pkg/lens"
)

// Number is the constraint for values edited by [NewNumber].
type Number interface {
	constraints.Integer | constraints.Float
}

// InputSpec specifies an [InputEditor].
type InputSpec[L any] struct {
	Label string
	// Validation rules in the tag syntax of go-playground/validator, like
	// "required,max=20" for text or "min=0,max=150" for numbers.
	Rules string
	// Additional checks, run after the rules. Use [Reject] to reject a value.
	Checks []func(L) error
	// If true, Input events only update the draft, and the draft is written
	// on Commit. Otherwise a valid input is written immediately.
	Deferred bool
}

// InputEditor edits a value through its textual form. It is used for text
// and numbers.
//
// While the user types, the text is kept as a draft. A draft that doesn't
// parse or validate is never written to the bound value; it is only kept so
// that it can be presented together with the reason of the rejection.
type InputEditor[R, L any] struct {
	editorBase
	v      lens.Var[R, L]
	role   string
	spec   InputSpec[L]
	parse  func(string) (L, error)
	format func(L) string

	// Presentation-only state.
	draft    string
	hasDraft bool
	rejected error
}

// NewText returns an editor for the string bound by v.
func NewText[R any](v lens.Var[R, string], spec InputSpec[string]) *InputEditor[R, string] {
	return &InputEditor[R, string]{
		v: v, role: "text", spec: spec,
		parse:  func(s string) (string, error) { return s, nil },
		format: func(s string) string { return s },
	}
}

// NewNumber returns an editor for the number bound by v. Inputs that don't
// parse as a number of type N, including those that would overflow it, are
// rejected.
func NewNumber[R any, N Number](v lens.Var[R, N], spec InputSpec[N]) *InputEditor[R, N] {
	return &InputEditor[R, N]{
		v: v, role: "number", spec: spec,
		parse:  parseNumber[N],
		format: func(n N) string { return fmt.Sprint(n) },
	}
}

func parseNumber[N Number](s string) (N, error) {
	var n N
	rv := reflect.ValueOf(&n).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil || rv.OverflowInt(i) {
			return n, Reject("not a valid %s", rv.Type())
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil || rv.OverflowUint(u) {
			return n, Reject("not a valid %s", rv.Type())
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, rv.Type().Bits())
		if err != nil || rv.OverflowFloat(f) {
			return n, Reject("not a valid %s", rv.Type())
		}
		rv.SetFloat(f)
	}
	return n, nil
}

// Var returns the var the editor is bound to.
func (e *InputEditor[R, L]) Var() lens.Var[R, L] { return e.v }

func (*InputEditor[R, L]) Kind() Kind { return PrimitiveKind }

func (e *InputEditor[R, L]) check(l L) error {
	if err := checkRules(l, e.spec.Rules); err != nil {
		return err
	}
	for _, check := range e.spec.Checks {
		if err := check(l); err != nil {
			return err
		}
	}
	return nil
}

// commit parses, validates and writes text. It doesn't touch the draft.
func (e *InputEditor[R, L]) commit(text string) error {
	l, err := e.parse(text)
	if err == nil {
		err = e.check(l)
	}
	if err == nil {
		err = e.v.Set(l)
	}
	return withPath(err, e.v.Path(), text)
}

// validateDraft parses and validates text without writing it.
func (e *InputEditor[R, L]) validateDraft(text string) error {
	l, err := e.parse(text)
	if err == nil {
		err = e.check(l)
	}
	return withPath(err, e.v.Path(), text)
}

func (e *InputEditor[R, L]) setDraft(text string) {
	e.draft, e.hasDraft = text, true
}

func (e *InputEditor[R, L]) clearDraft() {
	e.draft, e.hasDraft, e.rejected = "", false, nil
}

func (e *InputEditor[R, L]) Intent(ev Event) Result {
	path := e.v.Path()
	switch ev := ev.(type) {
	case Input:
		e.setDraft(ev.Text)
		if e.spec.Deferred {
			e.rejected = e.validateDraft(ev.Text)
			if e.rejected != nil {
				return resultOf(path, e.rejected)
			}
			return Result{Status: Drafted}
		}
		if err := e.commit(ev.Text); err != nil {
			// The draft is kept for presentation.
			e.rejected = err
			return resultOf(path, err)
		}
		e.clearDraft()
		return Result{Status: Applied}
	case Commit:
		if !e.hasDraft {
			return Result{Status: Unused}
		}
		err := e.commit(e.draft)
		// The draft is discarded whether it was written or not.
		e.clearDraft()
		if err != nil {
			e.rejected = err
		}
		return resultOf(path, err)
	case Cancel:
		if !e.hasDraft {
			return Result{Status: Unused}
		}
		e.clearDraft()
		return Result{Status: Drafted}
	case Assign:
		l, ok := ev.Value.(L)
		if !ok {
			return Result{Failed, &BadEventError{path, ev, fmt.Sprintf("%T", l)}}
		}
		err := e.check(l)
		if err == nil {
			err = e.v.Set(l)
		}
		err = withPath(err, path, "")
		e.rejected = err
		if err == nil {
			e.clearDraft()
		}
		return resultOf(path, err)
	}
	return Result{Status: Unused}
}

func (e *InputEditor[R, L]) Present() Node {
	n := Node{
		Kind: PrimitiveKind, Role: e.role, Label: e.spec.Label, Path: e.v.Path(),
		Draft: e.draft, HasDraft: e.hasDraft, Err: e.rejected}
	l, err := e.v.Get()
	if err != nil {
		n.Err = err
		return n
	}
	n.Value = l
	n.Text = e.format(l)
	return n
}

// Close discards the draft.
func (e *InputEditor[R, L]) Close() { e.clearDraft() }
