package lens

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/tt"
)

type person struct {
	Name    string
	Age     uint8
	Address address
}

type address struct {
	City string
	Zip  string
}

var (
	nameAcc = Field("name",
		func(p person) string { return p.Name },
		func(p person, s string) person { p.Name = s; return p })
	ageAcc = Field("age",
		func(p person) uint8 { return p.Age },
		func(p person, a uint8) person { p.Age = a; return p })
	addressAcc = Field("address",
		func(p person) address { return p.Address },
		func(p person, a address) person { p.Address = a; return p })
	cityAcc = Field("city",
		func(a address) string { return a.City },
		func(a address, s string) address { a.City = s; return a })
)

type notice interface {
	Tagged
	isNotice()
}

type info struct{ Text string }
type warning struct {
	Text  string
	Level int
}
type gone struct{}

func (info) Tag() Tag     { return "info" }
func (warning) Tag() Tag  { return "warning" }
func (gone) Tag() Tag     { return "gone" }
func (info) isNotice()    {}
func (warning) isNotice() {}
func (gone) isNotice()    {}

// checkLaws checks the round-trip and identity laws of acc against root, using
// leaf as the value to write.
func checkLaws[R, L any](t *testing.T, acc Accessor[R, L], root R, leaf L) {
	t.Helper()
	written, err := acc.Write(root, leaf)
	if err != nil {
		t.Fatalf("%s: Write -> %v", Path(acc), err)
	}
	read, err := acc.Read(written)
	if err != nil {
		t.Fatalf("%s: Read after Write -> %v", Path(acc), err)
	}
	if diff := cmp.Diff(leaf, read); diff != "" {
		t.Errorf("%s: round trip (-want +got):\n%s", Path(acc), diff)
	}

	observed, err := acc.Read(root)
	if err != nil {
		t.Fatalf("%s: Read -> %v", Path(acc), err)
	}
	rewritten, err := acc.Write(root, observed)
	if err != nil {
		t.Fatalf("%s: Write of observed value -> %v", Path(acc), err)
	}
	if diff := cmp.Diff(root, rewritten); diff != "" {
		t.Errorf("%s: identity (-want +got):\n%s", Path(acc), diff)
	}
}

var alice = person{Name: "Alice", Age: 30, Address: address{City: "Oslo", Zip: "0150"}}

func TestLaws(t *testing.T) {
	checkLaws(t, Identity[person](), alice, person{Name: "Bob"})
	checkLaws(t, nameAcc, alice, "Bob")
	checkLaws(t, ageAcc, alice, uint8(41))
	checkLaws(t, Compose(addressAcc, cityAcc), alice, "Bergen")
	checkLaws(t, Index[int](1), []int{1, 2, 3}, 20)
	checkLaws(t, Window[int](func(int) (int, int) { return 1, 3 }),
		[]int{1, 2, 3, 4}, []int{20, 30})
	checkLaws(t, Case[notice, warning]("warning"),
		notice(warning{"disk", 1}), warning{"disk full", 2})
	checkLaws(t, Compose(Index[person](0), Compose(addressAcc, cityAcc)),
		[]person{alice}, "Tromsø")
}

func TestCompose_IsAssociative(t *testing.T) {
	type nested struct{ People []person }
	peopleAcc := Field("people",
		func(n nested) []person { return n.People },
		func(n nested, ps []person) nested { n.People = ps; return n })
	root := nested{[]person{alice, alice}}

	left := Compose(Compose(peopleAcc, Index[person](1)), addressAcc)
	right := Compose(peopleAcc, Compose(Index[person](1), addressAcc))
	if left.String() != right.String() {
		t.Errorf("paths differ: %q vs %q", left, right)
	}
	l, _ := left.Write(root, address{City: "Rome"})
	r, _ := right.Write(root, address{City: "Rome"})
	if diff := cmp.Diff(l, r); diff != "" {
		t.Errorf("associativity (-left +right):\n%s", diff)
	}
}

func TestPath(t *testing.T) {
	tt.Test(t, tt.Fn("Path", func(a Accessor[[]person, string]) string { return Path(a) }), tt.Table{
		tt.Args(Compose(Index[person](2), Compose(addressAcc, cityAcc))).Rets("$[2].address.city"),
		tt.Args(Compose(Index[person](0), nameAcc)).Rets("$[0].name"),
	})
}

func TestWrite_DoesNotModifyRoot(t *testing.T) {
	s := []int{1, 2, 3}
	Index[int](0).Write(s, 100)
	Window[int](func(int) (int, int) { return 0, 2 }).Write(s, []int{7})
	if diff := cmp.Diff([]int{1, 2, 3}, s); diff != "" {
		t.Errorf("root modified (-want +got):\n%s", diff)
	}
}

func TestIndex_OutOfRange(t *testing.T) {
	read := func(i int, s []int) error {
		_, err := Index[int](i).Read(s)
		return err
	}
	write := func(i int, s []int) error {
		_, err := Index[int](i).Write(s, 0)
		return err
	}
	tt.Test(t, tt.Fn("read", read), tt.Table{
		tt.Args(0, []int{1}).Rets(tt.ErrorIs(nil)),
		tt.Args(1, []int{1}).Rets(tt.ErrorIs(ErrIndexOutOfRange)),
		tt.Args(-1, []int{1}).Rets(tt.ErrorIs(ErrIndexOutOfRange)),
		tt.Args(0, []int(nil)).Rets(tt.ErrorIs(ErrIndexOutOfRange)),
	})
	tt.Test(t, tt.Fn("write", write), tt.Table{
		tt.Args(3, []int{1, 2}).Rets(tt.ErrorIs(ErrIndexOutOfRange)),
	})

	_, err := Index[int](5).Read([]int{1, 2})
	var indexErr *IndexError
	if !errors.As(err, &indexErr) || indexErr.Index != 5 || indexErr.Len != 2 {
		t.Errorf("error -> %#v, want IndexError{Index: 5, Len: 2}", err)
	}
}

func TestWindow(t *testing.T) {
	page := func(p, size int) Accessor[[]int, []int] {
		return Window[int](func(int) (int, int) { return p * size, (p + 1) * size })
	}
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	tt.Test(t, tt.Fn("read", func(a Accessor[[]int, []int]) []int {
		got, _ := a.Read(s)
		return got
	}), tt.Table{
		tt.Args(page(0, 4)).Rets([]int{0, 1, 2, 3}),
		tt.Args(page(2, 4)).Rets([]int{8, 9}),
		tt.Args(page(5, 4)).Rets([]int{}),
	})

	// Writes with a different length splice.
	got, _ := page(1, 4).Write(s, []int{40})
	if diff := cmp.Diff([]int{0, 1, 2, 3, 40, 8, 9}, got); diff != "" {
		t.Errorf("splice (-want +got):\n%s", diff)
	}
}

func TestCase(t *testing.T) {
	warningAcc := Case[notice, warning]("warning")

	var u notice = info{"hi"}
	if got := CurrentTag(u); got != "info" {
		t.Errorf("CurrentTag -> %q, want info", got)
	}
	if got := CurrentTag[notice](nil); got != "" {
		t.Errorf("CurrentTag(nil) -> %q, want empty", got)
	}

	_, err := warningAcc.Read(u)
	var mismatch *VariantMismatchError
	if !errors.As(err, &mismatch) || mismatch.Want != "warning" || mismatch.Got != "info" {
		t.Errorf("Read on wrong variant -> %v", err)
	}
	if _, err := warningAcc.Write(u, warning{}); !errors.Is(err, ErrVariantMismatch) {
		t.Errorf("Write on wrong variant -> %v, want ErrVariantMismatch", err)
	}
	if _, err := warningAcc.Read(nil); !errors.Is(err, ErrVariantMismatch) {
		t.Errorf("Read on nil union -> %v, want ErrVariantMismatch", err)
	}
}

func TestGated(t *testing.T) {
	gate := NewGate("warning")
	acc := Gated(Case[notice, warning]("warning"), gate)
	var u notice = warning{"w", 1}

	if _, err := acc.Read(u); err != nil {
		t.Fatalf("Read through open gate -> %v", err)
	}
	gate.Close()
	_, err := acc.Read(u)
	var mismatch *VariantMismatchError
	if !errors.As(err, &mismatch) || !mismatch.Stale {
		t.Errorf("Read through closed gate -> %v, want stale VariantMismatchError", err)
	}
	if _, err := acc.Write(u, warning{}); !errors.Is(err, ErrVariantMismatch) {
		t.Errorf("Write through closed gate -> %v, want ErrVariantMismatch", err)
	}
}

func TestVar(t *testing.T) {
	c := cell.New(alice)
	city := Focus(Bind(c, addressAcc), cityAcc)

	if got, _ := city.Get(); got != "Oslo" {
		t.Errorf("Get -> %q, want Oslo", got)
	}
	if err := city.Set("Bergen"); err != nil {
		t.Fatalf("Set -> %v", err)
	}
	if got := c.Get().Address.City; got != "Bergen" {
		t.Errorf("cell city -> %q, want Bergen", got)
	}
	if got := city.Path(); got != "$.address.city" {
		t.Errorf("Path -> %q", got)
	}

	age := Bind(c, ageAcc)
	age.Swap(func(a uint8) (uint8, error) { return a + 1, nil })
	if got := c.Get().Age; got != 31 {
		t.Errorf("age after Swap -> %d, want 31", got)
	}

	errNo := errors.New("no")
	rev := c.Revision()
	if err := age.Swap(func(uint8) (uint8, error) { return 0, errNo }); err != errNo {
		t.Errorf("Swap -> %v, want errNo", err)
	}
	if c.Revision() != rev {
		t.Errorf("failed Swap committed")
	}
}

func TestVar_FailedWriteDoesNotCommit(t *testing.T) {
	c := cell.New([]int{1, 2})
	elem := Bind(c, Index[int](5))
	if err := elem.Set(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Set -> %v, want ErrIndexOutOfRange", err)
	}
	if c.Revision() != 0 {
		t.Errorf("failed Set committed")
	}
}
