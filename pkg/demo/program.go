// Package demo is the ebind demo program. It builds an editor tree over a
// small task board, reads line commands from stdin, routes them to the tree as
// intents, and renders the tree as indented text.
package demo

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/elves/ebind/pkg/logutil"
	"github.com/elves/ebind/pkg/prog"
	"github.com/elves/ebind/pkg/store"
	"github.com/elves/ebind/pkg/widgets"
)

var logger = logutil.GetLogger("demo")

// Program is the demo subprogram. It always runs, so it should come last in
// [prog.Composite].
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("arguments are not supported")
	}
	cfg, err := readConfig(f.Config)
	if err != nil {
		return err
	}

	ui := NewUI(SampleBoard(), widgets.InfoAlert{Notice: widgets.Notice{
		Title: "Welcome", Message: "type help to see the commands"}}, cfg)
	defer ui.Close()

	var st store.DBStore
	if f.DB != "" {
		var cleanup func()
		st, cleanup, err = openStore(f.DB, ui)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	s := &session{ui, st, fds[1], &textRenderer{fds[1], isatty.IsTerminal(fds[1].Fd())}}
	return s.run(fds[0], fds[2])
}

// run executes commands read from in until it is exhausted or a quit command
// is read. Bad commands are reported to errOut.
func (s *session) run(in io.Reader, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := s.exec(scanner.Text())
		if err == errQuit {
			return nil
		} else if err != nil {
			fmt.Fprintln(errOut, "error:", err)
		}
	}
	return scanner.Err()
}

func readConfig(path string) (widgets.Config, error) {
	if path == "" {
		return widgets.DefaultConfig(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return widgets.Config{}, err
	}
	defer file.Close()
	cfg, err := widgets.LoadConfig(file)
	if err != nil {
		return widgets.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
