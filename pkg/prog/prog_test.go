package prog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/elves/ebind/pkg/prog"
	"github.com/elves/ebind/pkg/prog/progtest"
)

var (
	Test = progtest.Test
	That = progtest.That
)

func TestCommonFlagHandling(t *testing.T) {
	Test(t, testProgram{},
		That("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		That("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		That("-help").
			WritesStdoutContaining("Usage: ebind [flags]"),
		That("-debug").DoesNothing(),
	)
}

func TestLogFlag(t *testing.T) {
	log := filepath.Join(t.TempDir(), "log")
	Test(t, testProgram{},
		That("-log", log).DoesNothing(),
		That("-log", filepath.Join(log, "bad", "path")).
			WritesStderrContaining("Warning: cannot open log file:"),
	)
	if _, err := os.Stat(log); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got *Flags
	var gotArgs []string
	p := programFunc(func(fds [3]*os.File, f *Flags, args []string) error {
		got, gotArgs = f, args
		return nil
	})
	Test(t, p, That("-config", "c.yaml", "-db", "x.db", "rest"))
	if got == nil || got.Config != "c.yaml" || got.DB != "x.db" {
		t.Errorf("flags = %+v", got)
	}
	if strings.Join(gotArgs, " ") != "rest" {
		t.Errorf("args = %v", gotArgs)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		That().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		That().WritesStdout("program 2"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		That().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		That().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		That().ExitsWith(3).WritesStderr(""),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		That().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type programFunc func(fds [3]*os.File, f *Flags, args []string) error

func (p programFunc) Run(fds [3]*os.File, f *Flags, args []string) error {
	return p(fds, f, args)
}
