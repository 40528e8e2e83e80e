package errutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if err := Multi(); err != nil {
		t.Errorf("Multi() -> %v, want nil", err)
	}
	if err := Multi(nil, nil); err != nil {
		t.Errorf("Multi(nil, nil) -> %v, want nil", err)
	}
	if err := Multi(nil, err1); err != err1 {
		t.Errorf("Multi(nil, err1) -> %v, want err1", err)
	}

	err := Multi(err1, nil, err2)
	if diff := cmp.Diff("multiple errors: error 1; error 2", err.Error()); diff != "" {
		t.Errorf("Error() (-want +got):\n%s", diff)
	}
}

func TestMulti_Flattens(t *testing.T) {
	flat := Multi(err1, err2, err3)
	nested := Multi(Multi(err1, err2), err3)
	if flat.Error() != nested.Error() {
		t.Errorf("nested Multi not flattened: %q vs %q", nested, flat)
	}
}

func TestMulti_Is(t *testing.T) {
	err := Multi(err1, err3)
	if !errors.Is(err, err1) || !errors.Is(err, err3) {
		t.Errorf("errors.Is doesn't see combined errors")
	}
	if errors.Is(err, err2) {
		t.Errorf("errors.Is sees an error that was not combined")
	}
}
