package editor

// Event is sent to editors through [Editor.Intent]. The editor core doesn't
// define where events come from; the types in this file are the events that
// the editors in this package understand.
type Event any

// Toggle flips a boolean.
type Toggle struct{}

// Input replaces the text being edited. It carries the full text, not a
// keystroke.
type Input struct{ Text string }

// Commit asks an editor to commit its draft.
type Commit struct{}

// Cancel discards a draft.
type Cancel struct{}

// Assign writes a value directly, after validation.
type Assign struct{ Value any }

// Activate triggers an action.
type Activate struct{}

// At routes an event to the child with the given key: a field name in a
// record, a tag in a union, or an element key in a sequence.
type At struct {
	Key   string
	Event Event
}

// AtIndex routes an event to the element at the given position of a
// sequence.
type AtIndex struct {
	Index int
	Event Event
}

// Select switches a union to the variant of Value, which must be a value of
// the union type.
type Select struct{ Value any }

// Insert inserts an element into a sequence at Index.
type Insert struct {
	Index int
	Value any
}

// Append appends an element to a sequence.
type Append struct{ Value any }

// Remove removes the element with the given key from a sequence.
type Remove struct{ Key string }

// Move moves an element of a sequence from one position to another.
type Move struct{ From, To int }

// Route builds an event that is routed through a path of keys, outermost
// first.
func Route(ev Event, keys ...string) Event {
	for i := len(keys) - 1; i >= 0; i-- {
		ev = At{keys[i], ev}
	}
	return ev
}
