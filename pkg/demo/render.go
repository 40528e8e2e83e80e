package demo

import (
	"fmt"
	"io"
	"strings"

	"github.com/elves/ebind/pkg/editor"
)

// textRenderer writes a presentation tree as indented text, one line per
// node. Container nodes are headings, and are shown in bold if bold is true.
type textRenderer struct {
	w    io.Writer
	bold bool
}

func (r *textRenderer) Enter(path []string, n editor.Node) {
	heading := n.Role
	if len(path) > 0 {
		heading = path[len(path)-1] + " [" + n.Role + "]"
	}
	if n.Tag != "" {
		heading += " <" + string(n.Tag) + ">"
	}
	if pages, ok := n.Attrs["pages"].(int); ok {
		if pages == 0 {
			heading += " (no items)"
		} else {
			heading += fmt.Sprintf(" (page %d of %d)", n.Attrs["page"].(int)+1, pages)
		}
	}
	if r.bold {
		heading = "\033[1m" + heading + "\033[m"
	}
	r.line(path, heading, n.Err)
}

func (r *textRenderer) Leaf(path []string, n editor.Node) {
	var text string
	switch n.Role {
	case "action":
		text = "[" + n.Text + "]"
		if enabled, _ := n.Value.(bool); !enabled {
			text += " (disabled)"
		}
	default:
		text = n.Text
		if n.HasDraft {
			text += fmt.Sprintf(" (draft %q)", n.Draft)
		}
	}
	r.line(path, path[len(path)-1]+": "+text, n.Err)
}

func (r *textRenderer) Leave([]string, editor.Node) {}

func (r *textRenderer) line(path []string, s string, err error) {
	if err != nil {
		s += " ! " + err.Error()
	}
	fmt.Fprintln(r.w, strings.Repeat("  ", len(path))+s)
}
