package editor

import (
	"github.com/elves/ebind/pkg/lens"
)

// RecordField is a child of a [Record].
type RecordField struct {
	Key    string
	Editor Editor
}

// FieldOf derives the var of a field from the var of its parent record, and
// builds the editor for it.
func FieldOf[R, S, L any](parent lens.Var[R, S], key string, acc lens.Accessor[S, L], build func(lens.Var[R, L]) Editor) RecordField {
	return RecordField{key, build(lens.Focus(parent, acc))}
}

// Record is a container with a fixed set of children, one per field. It has
// no state transitions of its own: children live as long as the record.
type Record struct {
	editorBase
	role     string
	keys     []string
	children map[string]Editor
}

// NewRecord returns a record editor with the given fields, in order. Fields
// with a nil editor are skipped.
func NewRecord(fields ...RecordField) *Record {
	r := &Record{role: "record", children: make(map[string]Editor, len(fields))}
	for _, f := range fields {
		if f.Editor == nil {
			continue
		}
		if _, dup := r.children[f.Key]; dup {
			panic("duplicate record key " + f.Key)
		}
		r.keys = append(r.keys, f.Key)
		r.children[f.Key] = f.Editor
	}
	return r
}

// WithRole sets the role that r presents as, and returns r.
func (r *Record) WithRole(role string) *Record {
	r.role = role
	return r
}

// Keys returns the keys of the children, in order.
func (r *Record) Keys() []string { return append([]string(nil), r.keys...) }

// Child returns the child editor with the given key, or nil.
func (r *Record) Child(key string) Editor { return r.children[key] }

func (*Record) Kind() Kind { return RecordKind }

func (r *Record) Present() Node {
	n := Node{Kind: RecordKind, Role: r.role}
	for _, key := range r.keys {
		child := r.children[key].Present()
		child.Key = key
		n.Children = append(n.Children, child)
	}
	return n
}

func (r *Record) Intent(ev Event) Result {
	at, ok := ev.(At)
	if !ok {
		return Result{Status: Unused}
	}
	child, ok := r.children[at.Key]
	if !ok {
		return Result{Status: Unused}
	}
	return child.Intent(at.Event)
}

func (r *Record) Close() {
	for _, key := range r.keys {
		r.children[key].Close()
	}
}
