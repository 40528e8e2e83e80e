package editor

import (
	"github.com/elves/ebind/pkg/lens"
)

// Node is the presentation of an editor, produced by [Editor.Present].
type Node struct {
	Kind Kind
	// Key of the node in its parent; empty for the root.
	Key string
	// What the editor presents as, like "toggle" or "paginator". Renderers
	// use it to pick a layout.
	Role  string
	Label string
	// Path of the bound value.
	Path string
	// The committed value, and its textual form.
	Value any
	Text  string
	// Presentation-only draft of a primitive editor.
	Draft    string
	HasDraft bool
	// Active variant of a union.
	Tag lens.Tag
	// Additional layout information, like the current page of a paginator.
	Attrs map[string]any
	// Last rejection, or an error reading the bound value.
	Err      error
	Children []Node
}

// Renderer is the capability through which a presentation tree is handed to
// a renderer.
type Renderer interface {
	// Enter is called for container nodes, before their children.
	Enter(path []string, n Node)
	// Leaf is called for primitive nodes.
	Leaf(path []string, n Node)
	// Leave is called for container nodes, after their children.
	Leave(path []string, n Node)
}

// Render presents e and walks the resulting tree depth-first, calling r.
func Render(r Renderer, e Editor) {
	render(r, nil, e.Present())
}

func render(r Renderer, path []string, n Node) {
	if n.Key != "" {
		path = append(path[:len(path):len(path)], n.Key)
	}
	if n.Kind == PrimitiveKind {
		r.Leaf(path, n)
		return
	}
	r.Enter(path, n)
	for _, child := range n.Children {
		render(r, path, child)
	}
	r.Leave(path, n)
}
