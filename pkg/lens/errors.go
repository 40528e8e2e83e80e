package lens

import (
	"errors"
	"fmt"
)

var (
	// ErrVariantMismatch is matched by errors returned when a payload
	// accessor is used against a union whose active variant is not the one
	// the accessor was derived for, or after the accessor has been revoked.
	ErrVariantMismatch = errors.New("variant mismatch")
	// ErrIndexOutOfRange is matched by errors returned when a sequence
	// accessor refers to an element that doesn't exist (any more).
	ErrIndexOutOfRange = errors.New("index out of range")
)

// VariantMismatchError is returned by union payload accessors.
type VariantMismatchError struct {
	Path string
	// Tag the accessor was derived for.
	Want Tag
	// Tag that was active. Empty when Stale is true.
	Got Tag
	// Set when the accessor was revoked because its variant was switched
	// away from.
	Stale bool
}

func (e *VariantMismatchError) Error() string {
	if e.Stale {
		return fmt.Sprintf("%s: variant mismatch: accessor for %q is stale", e.Path, e.Want)
	}
	return fmt.Sprintf("%s: variant mismatch: want %q, active variant is %q", e.Path, e.Want, e.Got)
}

func (e *VariantMismatchError) Is(target error) bool { return target == ErrVariantMismatch }

// IndexError is returned by sequence accessors.
type IndexError struct {
	Path  string
	Index int
	Len   int
	// Key identifies the element when it was located by identity rather than
	// position; Index is -1 in that case.
	Key string
}

func (e *IndexError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: index out of range: no element with key %q", e.Path, e.Key)
	}
	return fmt.Sprintf("%s: index out of range: %d not in [0, %d)", e.Path, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }
