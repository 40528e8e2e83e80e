// Package progtest contains utilities for testing [prog.Program]
// implementations.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/elves/ebind/pkg/prog"
)

// Case is a test case for Test. It is created by That and refined by its
// methods, which return the receiver.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content  string
	contains []string
	exact    bool
}

func (o output) check(t *testing.T, what, got string) {
	t.Helper()
	if o.exact && got != o.content {
		t.Errorf("got %s %q, want %q", what, got, o.content)
	}
	for _, s := range o.contains {
		if !strings.Contains(got, s) {
			t.Errorf("got %s %q, want it to contain %q", what, got, s)
		}
	}
}

// That returns a Case that runs the program with the given arguments.
func That(args ...string) *Case {
	return &Case{args: args}
}

// WithStdin sets the content of the standard input.
func (c *Case) WithStdin(s string) *Case {
	c.stdin = s
	return c
}

// DoesNothing requires the program to exit with 0 and write nothing.
func (c *Case) DoesNothing() *Case {
	return c.ExitsWith(0).WritesStdout("").WritesStderr("")
}

// ExitsWith requires the program to exit with the given code.
func (c *Case) ExitsWith(code int) *Case {
	c.want.exit = code
	return c
}

// WritesStdout requires the program to write exactly s to stdout.
func (c *Case) WritesStdout(s string) *Case {
	c.want.stdout.content, c.want.stdout.exact = s, true
	return c
}

// WritesStdoutContaining requires the program to write something containing
// s to stdout.
func (c *Case) WritesStdoutContaining(s string) *Case {
	c.want.stdout.contains = append(c.want.stdout.contains, s)
	return c
}

// WritesStderr requires the program to write exactly s to stderr.
func (c *Case) WritesStderr(s string) *Case {
	c.want.stderr.content, c.want.stderr.exact = s, true
	return c
}

// WritesStderrContaining requires the program to write something containing
// s to stderr.
func (c *Case) WritesStderrContaining(s string) *Case {
	c.want.stderr.contains = append(c.want.stderr.contains, s)
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...*Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(t, p, c.stdin, c.args...)
			if exit != c.want.exit {
				t.Errorf("exit code = %d, want %d (stderr %q)", exit, c.want.exit, stderr)
			}
			c.want.stdout.check(t, "stdout", stdout)
			c.want.stderr.check(t, "stderr", stderr)
		})
	}
}

// Run runs p with the given stdin and arguments, and returns the exit code
// and the output.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) (int, string, string) {
	t.Helper()
	dir := t.TempDir()
	in := writeFile(t, dir+"/stdin", stdin)
	out := createFile(t, dir+"/stdout")
	errOut := createFile(t, dir+"/stderr")

	exit := prog.Run([3]*os.File{in, out, errOut}, append([]string{"ebind"}, args...), p)
	return exit, readAll(t, out), readAll(t, errOut)
}

func writeFile(t *testing.T, name, content string) *os.File {
	if err := os.WriteFile(name, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func createFile(t *testing.T, name string) *os.File {
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func readAll(t *testing.T, f *os.File) string {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
