package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/editor"
	"github.com/elves/ebind/pkg/lens"
)

type profile struct {
	Name      string
	Following bool
}

func TestCard(t *testing.T) {
	c := cell.New(profile{Name: "Ada"})
	nameAcc := lens.Field("name",
		func(p profile) string { return p.Name },
		func(p profile, s string) profile { p.Name = s; return p })
	followingAcc := lens.Field("following",
		func(p profile) bool { return p.Following },
		func(p profile, b bool) profile { p.Following = b; return p })

	card := NewCard(CardSlots{
		Header:  editor.NewText(lens.Bind(c, nameAcc), editor.InputSpec[string]{Rules: "required"}),
		Actions: editor.NewToggle(lens.Bind(c, followingAcc), "Follow"),
	})

	if diff := cmp.Diff([]string{"header", "actions"}, card.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if r := card.Intent(editor.Route(editor.Toggle{}, "actions")); r.Status != editor.Applied {
		t.Errorf("Toggle -> %v", r)
	}
	if r := card.Intent(editor.Route(editor.Input{Text: ""}, "header")); r.Status != editor.Rejected {
		t.Errorf("empty name -> %v, want rejected", r)
	}
	if got := c.Get(); got != (profile{Name: "Ada", Following: true}) {
		t.Errorf("value = %+v", got)
	}
	if n := card.Present(); n.Role != "card" || len(n.Children) != 2 {
		t.Errorf("node = %+v", n)
	}
}
