// Package lens implements accessors, composable descriptors that locate a
// sub-value inside a larger value.
//
// An [Accessor] is a pair of pure functions: Read extracts the leaf from a
// root, and Write returns a new root with the leaf replaced. Write never
// modifies the root it is given; slices are copied before they are changed.
// This is what makes it safe to run accessors against the draft of a cell
// write scope, and to hand out values returned by [cell.Cell.Get].
//
// Every accessor obeys two laws:
//
//   - Read(Write(r, l)) == l for every valid leaf l;
//   - Write(r, Read(r)) == r, that is, writing back what was read is a no-op.
//
// Accessors compose with [Compose]; a [Var] roots an accessor at a cell.
package lens

import "fmt"

// Accessor reads and writes a leaf of type L inside a root of type R.
type Accessor[R, L any] interface {
	Read(root R) (L, error)
	Write(root R, leaf L) (R, error)
	// String returns the path of the accessor, such as ".name" or "[2]".
	String() string
}

type funcAccessor[R, L any] struct {
	path  string
	read  func(R) (L, error)
	write func(R, L) (R, error)
}

// Func builds an accessor from arbitrary read and write functions. The
// functions are responsible for obeying the accessor laws.
func Func[R, L any](path string, read func(R) (L, error), write func(R, L) (R, error)) Accessor[R, L] {
	return funcAccessor[R, L]{path, read, write}
}

func (a funcAccessor[R, L]) Read(r R) (L, error)       { return a.read(r) }
func (a funcAccessor[R, L]) Write(r R, l L) (R, error) { return a.write(r, l) }
func (a funcAccessor[R, L]) String() string            { return a.path }

type identity[R any] struct{}

// Identity returns the accessor whose leaf is the root itself.
func Identity[R any]() Accessor[R, R] { return identity[R]{} }

func (identity[R]) Read(r R) (R, error)       { return r, nil }
func (identity[R]) Write(_ R, l R) (R, error) { return l, nil }
func (identity[R]) String() string            { return "" }

type field[R, L any] struct {
	name string
	get  func(R) L
	set  func(R, L) R
}

// Field returns an accessor for a field of a record. The set function receives
// a copy of the root and returns it with the field replaced:
//
//	name := lens.Field("name",
//		func(p Person) string { return p.Name },
//		func(p Person, s string) Person { p.Name = s; return p })
func Field[R, L any](name string, get func(R) L, set func(R, L) R) Accessor[R, L] {
	return field[R, L]{name, get, set}
}

func (f field[R, L]) Read(r R) (L, error)       { return f.get(r), nil }
func (f field[R, L]) Write(r R, l L) (R, error) { return f.set(r, l), nil }
func (f field[R, L]) String() string            { return "." + f.name }

type composed[A, B, C any] struct {
	ab Accessor[A, B]
	bc Accessor[B, C]
}

// Compose returns an accessor that goes through ab, then bc.
func Compose[A, B, C any](ab Accessor[A, B], bc Accessor[B, C]) Accessor[A, C] {
	return composed[A, B, C]{ab, bc}
}

func (c composed[A, B, C]) Read(a A) (C, error) {
	b, err := c.ab.Read(a)
	if err != nil {
		var zero C
		return zero, err
	}
	return c.bc.Read(b)
}

func (c composed[A, B, C]) Write(a A, leaf C) (A, error) {
	// Like assigning to a[i][j], which is equivalent to
	// a = (assoc $a i (assoc $a[i] j leaf)): read the intermediate value,
	// then write from the inside out.
	b, err := c.ab.Read(a)
	if err != nil {
		return a, err
	}
	b, err = c.bc.Write(b, leaf)
	if err != nil {
		return a, err
	}
	return c.ab.Write(a, b)
}

func (c composed[A, B, C]) String() string { return c.ab.String() + c.bc.String() }

// Path formats the path of an accessor for messages, using "$" for the root.
func Path[R, L any](a Accessor[R, L]) string {
	return fmt.Sprintf("$%s", a)
}
