package widgets

import "github.com/elves/ebind/pkg/editor"

// CardSlots are the children of a [Card]. Nil slots are left out.
type CardSlots struct {
	Header  editor.Editor
	Media   editor.Editor
	Body    editor.Editor
	Footer  editor.Editor
	Actions editor.Editor
}

// Card is a record editor with a fixed layout.
type Card struct {
	*editor.Record
}

// NewCard returns a card with the given slots.
func NewCard(slots CardSlots) *Card {
	return &Card{editor.NewRecord(
		editor.RecordField{Key: "header", Editor: slots.Header},
		editor.RecordField{Key: "media", Editor: slots.Media},
		editor.RecordField{Key: "body", Editor: slots.Body},
		editor.RecordField{Key: "footer", Editor: slots.Footer},
		editor.RecordField{Key: "actions", Editor: slots.Actions},
	).WithRole("card")}
}
