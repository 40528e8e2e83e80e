package demo

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/elves/ebind/pkg/editor"
	"github.com/elves/ebind/pkg/store"
	"github.com/elves/ebind/pkg/widgets"
)

const helpText = `Commands:
  show                          show the editor tree
  input PATH TEXT               type TEXT into the input at PATH
  commit PATH                   commit the draft of the input at PATH
  cancel PATH                   discard the draft of the input at PATH
  toggle PATH                   flip the toggle at PATH
  activate PATH                 activate the action at PATH
  add TITLE                     add a task to the end of the board
  remove ID                     remove a task on the current page
  move FROM TO                  move a task within the current page
  page next|prev|first|last|N   change the page; pages are numbered from 1
  dismiss                       dismiss the alert
  arm KIND TITLE[: MESSAGE]     re-arm the alert from the UI
  alert KIND TITLE[: MESSAGE]   re-arm the alert from outside the UI
  history                       list the saved versions of the board
  revert SEQ                    restore a saved version of the board
  help                          show this help
  quit                          quit
PATH is a list of keys separated by "/", like board/body/t1/title.
KIND is one of info, warning and error.`

var errQuit = errors.New("quit")

// session executes commands against a UI.
type session struct {
	ui *UI
	// Nil if the state is not persisted.
	st  store.DBStore
	out io.Writer
	r   *textRenderer
}

// exec executes a line of command. It returns errQuit if the session should
// end, and any other error if the line is not a valid command. Intents that
// are not applied are not errors; their results are written to the output.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	logger.Debugw("executing command", "cmd", cmd, "args", rest)

	switch cmd {
	case "show":
		editor.Render(s.r, s.ui.Root)
	case "input":
		path, text, _ := strings.Cut(rest, " ")
		return s.intent(editor.Input{Text: text}, path)
	case "commit":
		return s.intent(editor.Commit{}, rest)
	case "cancel":
		return s.intent(editor.Cancel{}, rest)
	case "toggle":
		return s.intent(editor.Toggle{}, rest)
	case "activate":
		return s.intent(editor.Activate{}, rest)
	case "add":
		t, err := s.ui.AddTask(rest)
		s.report(editor.Result{Status: editor.Classify(err), Err: err})
		if err == nil {
			fmt.Fprintln(s.out, "added", t.ID)
		}
	case "remove":
		if rest == "" {
			return errors.New("remove needs a task ID")
		}
		return s.intent(editor.Remove{Key: rest}, "board/body")
	case "move":
		from, to, err := twoInts(rest)
		if err != nil {
			return fmt.Errorf("move: %w", err)
		}
		return s.intent(editor.Move{From: from, To: to}, "board/body")
	case "page":
		ev, err := pageEvent(rest)
		if err != nil {
			return err
		}
		return s.intent(ev, "board/body")
	case "dismiss":
		return s.intent(widgets.Dismiss{}, "alert")
	case "arm":
		state, err := alertState(rest)
		if err != nil {
			return err
		}
		return s.intent(widgets.Arm{State: state}, "alert")
	case "alert":
		state, err := alertState(rest)
		if err != nil {
			return err
		}
		err = s.ui.Alert.Set(state)
		s.report(editor.Result{Status: editor.Classify(err), Err: err})
	case "history":
		return s.history()
	case "revert":
		if s.st == nil {
			return errNoStore
		}
		seq, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("revert: %w", err)
		}
		if err := s.ui.RevertBoard(s.st, seq); err != nil {
			return err
		}
		s.report(editor.Result{Status: editor.Applied})
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q; try help", cmd)
	}
	return nil
}

var errNoStore = errors.New("no database; start with -db")

func (s *session) intent(ev editor.Event, path string) error {
	if path == "" {
		return errors.New("missing path")
	}
	s.report(s.ui.Root.Intent(editor.Route(ev, strings.Split(path, "/")...)))
	return nil
}

func (s *session) report(r editor.Result) {
	fmt.Fprintln(s.out, r)
}

func (s *session) history() error {
	if s.st == nil {
		return errNoStore
	}
	entries, err := s.st.Entries(boardKey, 0, math.MaxInt)
	if err != nil {
		return err
	}
	for _, e := range entries {
		var b Board
		if err := s.st.LoadEntry(boardKey, e.Seq, &b); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%d: %s, %d tasks\n", e.Seq, b.Name, len(b.Tasks))
	}
	return nil
}

func twoInts(s string) (int, int, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 numbers, got %q", s)
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func pageEvent(arg string) (editor.Event, error) {
	switch arg {
	case "next":
		return widgets.Next{}, nil
	case "prev":
		return widgets.Prev{}, nil
	case "first":
		return widgets.First{}, nil
	case "last":
		return widgets.Last{}, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("bad page %q", arg)
	}
	return widgets.GoTo{Page: n - 1}, nil
}

func alertState(arg string) (widgets.AlertState, error) {
	kind, text, _ := strings.Cut(arg, " ")
	title, message, _ := strings.Cut(text, ":")
	notice := widgets.Notice{Title: strings.TrimSpace(title), Message: strings.TrimSpace(message)}
	switch kind {
	case "info":
		return widgets.InfoAlert{Notice: notice}, nil
	case "warning":
		return widgets.WarningAlert{Notice: notice}, nil
	case "error":
		return widgets.ErrorAlert{Notice: notice}, nil
	}
	return nil, fmt.Errorf("bad alert kind %q", kind)
}
