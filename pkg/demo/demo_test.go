package demo

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/ebind/pkg/editor"
	"github.com/elves/ebind/pkg/store"
	"github.com/elves/ebind/pkg/widgets"
)

type testSession struct {
	*session
	t   *testing.T
	buf *bytes.Buffer
}

func newTestSession(t *testing.T, cfg widgets.Config) *testSession {
	t.Helper()
	ui := NewUI(SampleBoard(), widgets.InfoAlert{Notice: widgets.Notice{Title: "Welcome", Message: "hi"}}, cfg)
	t.Cleanup(ui.Close)
	buf := &bytes.Buffer{}
	return &testSession{&session{ui: ui, out: buf, r: &textRenderer{w: buf}}, t, buf}
}

// run executes line, failing the test if it is not a valid command, and
// returns the output.
func (ts *testSession) run(line string) string {
	ts.t.Helper()
	ts.buf.Reset()
	if err := ts.exec(line); err != nil {
		ts.t.Fatalf("exec(%q) -> %v", line, err)
	}
	return ts.buf.String()
}

func (ts *testSession) wantOutput(line, want string) {
	ts.t.Helper()
	if got := ts.run(line); got != want {
		ts.t.Errorf("%s: got output %q, want %q", line, got, want)
	}
}

func (ts *testSession) wantRejected(line string) {
	ts.t.Helper()
	if got := ts.run(line); !strings.HasPrefix(got, "rejected: ") {
		ts.t.Errorf("%s: got output %q, want rejection", line, got)
	}
}

func ids(tasks []Task) []string {
	var ids []string
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func smallPages() widgets.Config {
	cfg := widgets.DefaultConfig()
	cfg.Paginator.PageSize = 2
	return cfg
}

var wantShow = `ebind
  board [card]
    header: Chores
    body [paginator] (page 1 of 1)
      t1 [task]
        title: Water the plants
        done: [ ]
        priority: 2
      t2 [task]
        title: Take out the trash
        done: [ ]
        priority: 3
      t3 [task]
        title: Fix the bike
        done: [x]
        priority: 1
    footer: [ ]
    actions [actions]
      clear-done: [Clear done]
  alert [alert] <info>
    info [notice]
      title: Welcome
      message: hi
`

func TestShow(t *testing.T) {
	ts := newTestSession(t, widgets.DefaultConfig())
	if diff := cmp.Diff(wantShow, ts.run("show")); diff != "" {
		t.Errorf("show (-want +got):\n%s", diff)
	}
}

func TestShow_Bold(t *testing.T) {
	var buf bytes.Buffer
	r := &textRenderer{w: &buf, bold: true}
	r.Enter([]string{"board"}, editor.Node{Kind: editor.RecordKind, Role: "card"})
	if got, want := buf.String(), "  \033[1mboard [card]\033[m\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEditing(t *testing.T) {
	ts := newTestSession(t, widgets.DefaultConfig())
	ts.wantOutput("input board/body/t1/title Water the roses", "applied\n")
	ts.wantOutput("toggle board/body/t2/done", "applied\n")
	ts.wantRejected("input board/body/t2/priority 9")
	ts.wantRejected("input board/header ")
	ts.wantOutput("toggle board/footer", "applied\n")

	b := ts.ui.Board.Get()
	if b.Tasks[0].Title != "Water the roses" || !b.Tasks[1].Done || b.Tasks[1].Priority != 3 {
		t.Errorf("tasks = %+v", b.Tasks)
	}
	if b.Name != "Chores" || !b.Archived {
		t.Errorf("board = %+v", b)
	}
	if out := ts.run("show"); !strings.Contains(out, `priority: 3 (draft "9") ! `) {
		t.Errorf("rejected draft not shown:\n%s", out)
	}

	ts.wantOutput("activate board/actions/clear-done", "applied\n")
	if diff := cmp.Diff([]string{"t1"}, ids(ts.ui.Board.Get().Tasks)); diff != "" {
		t.Errorf("tasks (-want +got):\n%s", diff)
	}
	ts.wantRejected("activate board/actions/clear-done")
}

func TestPaging(t *testing.T) {
	ts := newTestSession(t, smallPages())
	p := ts.ui.Tasks()

	ts.wantOutput("page next", "applied\n")
	if diff := cmp.Diff([]string{"t3"}, p.Keys()); p.Page() != 1 || diff != "" {
		t.Errorf("page %d, keys (-want +got):\n%s", p.Page(), diff)
	}
	ts.wantOutput("page next", "unused\n")
	ts.wantOutput("page 1", "applied\n")
	ts.wantRejected("remove t3")

	ts.wantOutput("remove t2", "applied\n")
	ts.wantOutput("move 0 1", "applied\n")
	if diff := cmp.Diff([]string{"t3", "t1"}, ids(ts.ui.Board.Get().Tasks)); diff != "" {
		t.Errorf("tasks (-want +got):\n%s", diff)
	}

	ts.wantOutput("add Buy milk", "applied\nadded t4\n")
	ts.wantRejected("add")
	if diff := cmp.Diff([]string{"t3", "t1"}, p.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if out := ts.run("show"); !strings.Contains(out, "body [paginator] (page 1 of 2)") {
		t.Errorf("page not shown:\n%s", out)
	}
	ts.wantOutput("page last", "applied\n")
	if diff := cmp.Diff([]string{"t4"}, p.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestAlert(t *testing.T) {
	ts := newTestSession(t, widgets.DefaultConfig())
	ts.wantOutput("dismiss", "applied\n")
	ts.wantOutput("dismiss", "unused\n")
	ts.wantRejected("arm info Hi")

	ts.wantOutput("alert warning Disk: almost full", "applied\n")
	ts.wantOutput("input alert/warning/title Disk!", "applied\n")
	want := widgets.AlertState(widgets.WarningAlert{Notice: widgets.Notice{Title: "Disk!", Message: "almost full"}})
	if got := ts.ui.Alert.Get(); got != want {
		t.Errorf("alert = %#v, want %#v", got, want)
	}
}

func TestAlert_IntentRearm(t *testing.T) {
	cfg := widgets.DefaultConfig()
	cfg.Alert.Rearm = widgets.RearmIntent
	ts := newTestSession(t, cfg)
	ts.wantOutput("dismiss", "applied\n")
	ts.wantOutput("arm error Oops: failed", "applied\n")
	want := widgets.AlertState(widgets.ErrorAlert{Notice: widgets.Notice{Title: "Oops", Message: "failed"}})
	if got := ts.ui.Alert.Get(); got != want {
		t.Errorf("alert = %#v, want %#v", got, want)
	}
}

func TestBadCommands(t *testing.T) {
	ts := newTestSession(t, widgets.DefaultConfig())
	for _, line := range []string{
		"bogus", "input", "remove", "move 1", "move a b", "page sideways",
		"arm purple x", "alert", "history", "revert 1",
	} {
		if err := ts.exec(line); err == nil || err == errQuit {
			t.Errorf("exec(%q) -> %v, want error", line, err)
		}
	}
	for _, line := range []string{"", "  ", "# comment"} {
		if out := ts.run(line); out != "" {
			t.Errorf("exec(%q) wrote %q", line, out)
		}
	}
	if err := ts.exec("quit"); err != errQuit {
		t.Errorf("quit -> %v", err)
	}
}

func TestPersistence(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	ts := newTestSession(t, smallPages())
	_, cleanup, err := openStore(db, ts.ui)
	if err != nil {
		t.Fatal(err)
	}
	ts.wantOutput("input board/header Groceries", "applied\n")
	ts.wantOutput("page next", "applied\n")
	cleanup()

	ts2 := newTestSession(t, smallPages())
	st, cleanup, err := openStore(db, ts2.ui)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	ts2.st = st
	if name := ts2.ui.Board.Get().Name; name != "Groceries" {
		t.Errorf("restored name = %q", name)
	}
	if page := ts2.ui.Tasks().Page(); page != 1 {
		t.Errorf("restored page = %d", page)
	}

	ts2.wantOutput("history",
		"1: Chores, 3 tasks\n2: Groceries, 3 tasks\n3: Groceries, 3 tasks\n")
	ts2.wantOutput("revert 1", "applied\n")
	if name := ts2.ui.Board.Get().Name; name != "Chores" {
		t.Errorf("reverted name = %q", name)
	}
	if err := ts2.exec("revert 99"); !errors.Is(err, store.ErrNoEntry) {
		t.Errorf("revert 99 -> %v, want ErrNoEntry", err)
	}
}

func TestNextID(t *testing.T) {
	for _, test := range []struct {
		ids  []string
		want string
	}{
		{nil, "t1"},
		{[]string{"t1"}, "t2"},
		{[]string{"t2", "t3"}, "t4"},
		{[]string{"a", "b"}, "t3"},
	} {
		var tasks []Task
		for _, id := range test.ids {
			tasks = append(tasks, Task{ID: id})
		}
		if got := nextID(tasks); got != test.want {
			t.Errorf("nextID(%v) = %q, want %q", test.ids, got, test.want)
		}
	}
}
