// Package editor implements editors, the units of a user interface that are
// bound to external state instead of holding their own.
//
// An editor is built over a [lens.Var]. It exposes two operations to the
// layer that draws it: [Editor.Present], a pure projection of the current
// state into a [Node], and [Editor.Intent], which applies an edit by writing
// through the var. Editors never keep committed state of their own. The only
// thing they may keep is presentation state, like the draft of a text field
// that doesn't validate yet, which is never written back and never visible to
// other editors.
//
// There are four kinds of editors ([Kind]):
//
//   - primitive editors ([ToggleEditor], [InputEditor], [ActionEditor]) bind a
//     single value;
//   - [Record] composes a fixed set of child editors, one per field;
//   - [Union] follows the active variant of a tagged union, rebuilding its
//     child whenever the variant changes;
//   - [Sequence] keeps one child editor per element of a slice, keyed by the
//     identity of the element.
//
// Containers observe the cell their var is rooted at, so they re-derive their
// children synchronously after every commit, before the mutating call
// returns.
package editor

import (
	"errors"
	"fmt"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/lens"
	"github.com/elves/ebind/pkg/logutil"
)

var logger = logutil.GetLogger("editor")

// Kind is the kind of an editor.
type Kind uint8

// Possible values for Kind.
const (
	PrimitiveKind Kind = iota
	RecordKind
	UnionKind
	SequenceKind
)

var kindNames = [...]string{
	PrimitiveKind: "primitive",
	RecordKind:    "record",
	UnionKind:     "union",
	SequenceKind:  "sequence",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Editor is implemented by all editors. The set of implementations is closed:
// types outside this package can only become editors by embedding one of the
// editors defined here.
type Editor interface {
	// Kind returns the kind of the editor. It never changes.
	Kind() Kind
	// Present projects the current state for display.
	Present() Node
	// Intent applies an event.
	Intent(ev Event) Result
	// Close tears down the editor and all its descendants. An editor must not
	// be used after it is closed.
	Close()

	sealed()
}

type editorBase struct{}

func (editorBase) sealed() {}

// Status is the outcome of an intent.
type Status uint8

// Possible values for Status.
const (
	// The event was not understood by the editor.
	Unused Status = iota
	// The state was mutated.
	Applied
	// Only presentation state, such as a draft, was changed.
	Drafted
	// The event was an expected but invalid user input. The state is
	// unchanged and the reason is available for feedback.
	Rejected
	// The event hit a structural error, such as a stale accessor. The state
	// is unchanged; the error indicates a bug in how editors were composed.
	Failed
)

var statusNames = [...]string{
	Unused:   "unused",
	Applied:  "applied",
	Drafted:  "drafted",
	Rejected: "rejected",
	Failed:   "failed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Result is returned by [Editor.Intent].
type Result struct {
	Status Status
	// Non-nil when Status is Rejected or Failed.
	Err error
}

func (r Result) String() string {
	if r.Err != nil {
		return r.Status.String() + ": " + r.Err.Error()
	}
	return r.Status.String()
}

// Classify maps an error returned from a write to the status of the intent
// that caused it. Validation failures and references to missing sequence
// elements are expected, so they are Rejected. Everything else, including
// variant mismatches and reentrant mutations, is Failed.
func Classify(err error) Status {
	switch {
	case err == nil:
		return Applied
	case errors.Is(err, ErrValidationRejected), errors.Is(err, lens.ErrIndexOutOfRange):
		return Rejected
	default:
		return Failed
	}
}

// resultOf turns the error of a write into a Result. Failures are logged, as
// they indicate a composition bug.
func resultOf(path string, err error) Result {
	status := Classify(err)
	switch status {
	case Failed:
		logger.Warnw("intent failed", "path", path, "err", err)
	case Rejected:
		logger.Debugw("intent rejected", "path", path, "err", err)
	}
	return Result{status, err}
}

// Structural errors that can surface through intents are re-exported here for
// convenience.
var (
	ErrVariantMismatch   = lens.ErrVariantMismatch
	ErrIndexOutOfRange   = lens.ErrIndexOutOfRange
	ErrReentrantMutation = cell.ErrReentrantMutation
)

// BadEventError is returned when an event carries a value of the wrong type.
type BadEventError struct {
	Path  string
	Event Event
	Want  string
}

func (e *BadEventError) Error() string {
	return fmt.Sprintf("%s: %T carries a value that is not %s", e.Path, e.Event, e.Want)
}
