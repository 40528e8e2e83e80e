package demo

import (
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/elves/ebind/pkg/lens"
)

// Task is an item on a [Board].
type Task struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Done     bool   `yaml:"done"`
	Priority int    `yaml:"priority"`
}

// Board is the state edited by the demo.
type Board struct {
	Name     string `yaml:"name"`
	Archived bool   `yaml:"archived"`
	Tasks    []Task `yaml:"tasks"`
}

// SampleBoard returns the board the demo starts with.
func SampleBoard() Board {
	return Board{
		Name: "Chores",
		Tasks: []Task{
			{ID: "t1", Title: "Water the plants", Priority: 2},
			{ID: "t2", Title: "Take out the trash", Priority: 3},
			{ID: "t3", Title: "Fix the bike", Done: true, Priority: 1},
		},
	}
}

var (
	nameAcc = lens.Field("name",
		func(b Board) string { return b.Name },
		func(b Board, s string) Board { b.Name = s; return b })
	archivedAcc = lens.Field("archived",
		func(b Board) bool { return b.Archived },
		func(b Board, a bool) Board { b.Archived = a; return b })
	tasksAcc = lens.Field("tasks",
		func(b Board) []Task { return b.Tasks },
		func(b Board, ts []Task) Board { b.Tasks = ts; return b })

	titleAcc = lens.Field("title",
		func(t Task) string { return t.Title },
		func(t Task, s string) Task { t.Title = s; return t })
	doneAcc = lens.Field("done",
		func(t Task) bool { return t.Done },
		func(t Task, d bool) Task { t.Done = d; return t })
	priorityAcc = lens.Field("priority",
		func(t Task) int { return t.Priority },
		func(t Task, p int) Task { t.Priority = p; return t })
)

func taskID(t Task) string { return t.ID }

// nextID returns the first ID of the form "tN" not used by tasks, starting
// from N = len(tasks)+1.
func nextID(tasks []Task) string {
	for n := len(tasks) + 1; ; n++ {
		id := "t" + strconv.Itoa(n)
		if !slices.ContainsFunc(tasks, func(t Task) bool { return t.ID == id }) {
			return id
		}
	}
}

func anyDone(tasks []Task) bool {
	return slices.ContainsFunc(tasks, func(t Task) bool { return t.Done })
}

func clearDone(tasks []Task) ([]Task, error) {
	return slices.DeleteFunc(slices.Clone(tasks), func(t Task) bool { return t.Done }), nil
}
