package lens

import "github.com/elves/ebind/pkg/cell"

// Var is an accessor rooted at a cell: a handle on a piece of the cell's
// value that can be read and written directly.
type Var[R, L any] struct {
	cell *cell.Cell[R]
	acc  Accessor[R, L]
}

// Root returns a Var for the whole value of c.
func Root[R any](c *cell.Cell[R]) Var[R, R] {
	return Var[R, R]{c, Identity[R]()}
}

// Bind returns a Var for the leaf of c located by acc.
func Bind[R, L any](c *cell.Cell[R], acc Accessor[R, L]) Var[R, L] {
	return Var[R, L]{c, acc}
}

// Focus narrows v with another accessor.
func Focus[R, L, M any](v Var[R, L], acc Accessor[L, M]) Var[R, M] {
	return Var[R, M]{v.cell, Compose(v.acc, acc)}
}

// Cell returns the cell v is rooted at.
func (v Var[R, L]) Cell() *cell.Cell[R] { return v.cell }

// Accessor returns the accessor from the cell's value to the leaf.
func (v Var[R, L]) Accessor() Accessor[R, L] { return v.acc }

// Path returns the path of v, such as "$.items[2]".
func (v Var[R, L]) Path() string { return Path(v.acc) }

// Get reads the leaf from the committed value of the cell.
func (v Var[R, L]) Get() (L, error) {
	return v.acc.Read(v.cell.Get())
}

// Set writes the leaf in one write scope of the cell.
func (v Var[R, L]) Set(l L) error {
	return v.cell.Mutate(func(root *R) error {
		newRoot, err := v.acc.Write(*root, l)
		if err != nil {
			return err
		}
		*root = newRoot
		return nil
	})
}

// Swap reads the leaf, calls f with it, and writes the result back, all in
// one write scope. If f returns an error, nothing is written.
func (v Var[R, L]) Swap(f func(L) (L, error)) error {
	return v.cell.Mutate(func(root *R) error {
		l, err := v.acc.Read(*root)
		if err != nil {
			return err
		}
		l, err = f(l)
		if err != nil {
			return err
		}
		newRoot, err := v.acc.Write(*root, l)
		if err != nil {
			return err
		}
		*root = newRoot
		return nil
	})
}
