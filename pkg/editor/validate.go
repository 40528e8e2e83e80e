package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/constraints"
)

// ErrValidationRejected is matched by errors returned when an input fails
// validation.
var ErrValidationRejected = errors.New("validation rejected")

// ValidationError describes a rejected input.
type ValidationError struct {
	Path string
	// The input as typed, if the rejection came from an Input event.
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString("validation rejected")
	if e.Input != "" {
		fmt.Fprintf(&sb, " for input %q", e.Input)
	}
	if e.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Reason)
	}
	return sb.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationRejected }

// Reject returns a *ValidationError with a formatted reason. Check functions
// and actions use it to reject input as an expected condition.
func Reject(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// validate checks values against rules written in the tag syntax of
// go-playground/validator, like "required,max=20".
var validate = validator.New()

// RegisterRule makes a custom rule available to the Rules of editor specs.
func RegisterRule(tag string, f func(value any) bool) error {
	return validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return f(fl.Field().Interface())
	})
}

func checkRules(v any, rules string) error {
	if rules == "" {
		return nil
	}
	err := validate.Var(v, rules)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		return &ValidationError{Reason: fmt.Sprintf("%v violates rule %s", v, rule)}
	}
	// Such as *validator.InvalidValidationError; not a rejection.
	return fmt.Errorf("bad validation rules %q: %w", rules, err)
}

// InRange returns a check that rejects numbers outside [lo, hi].
func InRange[N constraints.Integer | constraints.Float](lo, hi N) func(N) error {
	return func(n N) error {
		if n < lo || n > hi {
			return Reject("%v out of range [%v, %v]", n, lo, hi)
		}
		return nil
	}
}

// withPath fills in the path and input of a validation error, leaving other
// errors untouched.
func withPath(err error, path, input string) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		e := *verr
		if e.Path == "" {
			e.Path = path
		}
		if e.Input == "" {
			e.Input = input
		}
		return &e
	}
	return err
}
