package demo

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/editor"
	"github.com/elves/ebind/pkg/errutil"
	"github.com/elves/ebind/pkg/lens"
	"github.com/elves/ebind/pkg/store"
	"github.com/elves/ebind/pkg/widgets"
)

// Keys of the snapshots in the store.
const (
	boardKey = "board"
	pageKey  = "page"
)

// UI is the editor tree of the demo, together with the cells it edits.
//
// The tree is a record with two children:
//
//	board    a card; header is the name, body pages through the tasks,
//	         footer is the archived toggle, actions holds "clear-done"
//	alert    an alert
type UI struct {
	Board *cell.Cell[Board]
	Alert *cell.Cell[widgets.AlertState]
	Root  *editor.Record

	tasks *widgets.Paginator[Board, Task]
}

// NewUI builds the editor tree over new cells holding board and alert.
func NewUI(board Board, alert widgets.AlertState, cfg widgets.Config) *UI {
	u := &UI{Board: cell.New(board), Alert: cell.New(alert)}

	u.tasks = widgets.NewPaginator(lens.Bind(u.Board, tasksAcc), cfg.Paginator,
		editor.SequenceSpec[Board, Task]{KeyOf: taskID, Build: buildTask})
	card := widgets.NewCard(widgets.CardSlots{
		Header: editor.NewText(lens.Bind(u.Board, nameAcc),
			editor.InputSpec[string]{Label: "Name", Rules: "required,max=40"}),
		Body:   u.tasks,
		Footer: editor.NewToggle(lens.Bind(u.Board, archivedAcc), "Archived"),
		Actions: editor.NewRecord(editor.RecordField{
			Key: "clear-done",
			Editor: editor.NewAction(lens.Bind(u.Board, tasksAcc), editor.ActionSpec[[]Task]{
				Label: "Clear done", Do: clearDone, Enabled: anyDone}),
		}).WithRole("actions"),
	})
	u.Root = editor.NewRecord(
		editor.RecordField{Key: "board", Editor: card},
		editor.RecordField{Key: "alert", Editor: widgets.NewAlert(lens.Root(u.Alert), cfg.Alert)},
	).WithRole("ebind")
	return u
}

func buildTask(_ string, v lens.Var[Board, Task]) editor.Editor {
	return editor.NewRecord(
		editor.FieldOf(v, "title", titleAcc, func(v lens.Var[Board, string]) editor.Editor {
			return editor.NewText(v, editor.InputSpec[string]{Label: "Title", Rules: "required,max=60"})
		}),
		editor.FieldOf(v, "done", doneAcc, func(v lens.Var[Board, bool]) editor.Editor {
			return editor.NewToggle(v, "Done")
		}),
		editor.FieldOf(v, "priority", priorityAcc, func(v lens.Var[Board, int]) editor.Editor {
			return editor.NewNumber(v, editor.InputSpec[int]{
				Label: "Priority", Checks: []func(int) error{editor.InRange(0, 5)}})
		}),
	).WithRole("task")
}

// Tasks returns the paginator over the tasks.
func (u *UI) Tasks() *widgets.Paginator[Board, Task] { return u.tasks }

// AddTask appends a task with the given title to the end of the board, which
// may be on a page other than the current one.
func (u *UI) AddTask(title string) (Task, error) {
	var added Task
	err := u.tasks.Items().Swap(func(tasks []Task) ([]Task, error) {
		if title == "" {
			return tasks, editor.Reject("title is empty")
		}
		added = Task{ID: nextID(tasks), Title: title}
		return append(slices.Clone(tasks), added), nil
	})
	return added, err
}

// Restore sets the board and the current page from their snapshots in st, if
// there are any.
func (u *UI) Restore(st store.DBStore) error {
	if _, err := store.Restore(st, boardKey, u.Board); err != nil {
		return err
	}
	var page int
	err := st.Load(pageKey, &page)
	if errors.Is(err, store.ErrNoSnapshot) {
		return nil
	} else if err != nil {
		return err
	}
	_, err = u.tasks.GoTo(page)
	return err
}

// Persist keeps the snapshots of the board and the current page in st up to
// date, until the returned function is called.
func (u *UI) Persist(st store.DBStore) (cancel func(), err error) {
	cancelBoard, err := store.Persist(st, boardKey, u.Board)
	if err != nil {
		return nil, err
	}
	cancelPage, err := store.Persist(st, pageKey, u.tasks.PageCell())
	if err != nil {
		cancelBoard()
		return nil, err
	}
	return func() {
		cancelBoard()
		cancelPage()
	}, nil
}

// RevertBoard sets the board to the journal entry with the given sequence
// number.
func (u *UI) RevertBoard(st store.DBStore, seq int) error {
	var b Board
	if err := st.LoadEntry(boardKey, seq, &b); err != nil {
		return err
	}
	return u.Board.Set(b)
}

// Close closes the editor tree and the cells.
func (u *UI) Close() {
	u.Root.Close()
	u.Board.Close()
	u.Alert.Close()
}

func openStore(path string, u *UI) (st store.DBStore, cancel func(), err error) {
	st, err = store.NewStore(path)
	if err != nil {
		return nil, nil, err
	}
	if err := u.Restore(st); err != nil {
		return nil, nil, errutil.Multi(err, st.Close())
	}
	cancelPersist, err := u.Persist(st)
	if err != nil {
		return nil, nil, errutil.Multi(err, st.Close())
	}
	return st, func() {
		cancelPersist()
		if err := st.Close(); err != nil {
			logger.Errorw("failed to close store", "err", err)
		}
	}, nil
}
