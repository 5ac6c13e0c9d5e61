package space

import (
	"fmt"
)

type indexKind int

const (
	kindSingle indexKind = iota
	kindRange
	kindMask
	kindList
)

// Index selects rows of a point set. Build one with Single, Range, Mask or
// Indices.
type Index struct {
	kind   indexKind
	lo, hi int
	mask   []bool
	list   []int
}

// Single selects the row i.
func Single(i int) Index {
	return Index{kind: kindSingle, lo: i}
}

// Range selects rows lo up to but not including hi.
func Range(lo, hi int) Index {
	return Index{kind: kindRange, lo: lo, hi: hi}
}

// Mask selects every row whose bit is set. The mask must have one bit per
// row.
func Mask(bits []bool) Index {
	return Index{kind: kindMask, mask: bits}
}

// Indices selects the listed rows, in the order given. Repeats are allowed.
func Indices(is ...int) Index {
	return Index{kind: kindList, list: is}
}

func (idx Index) String() string {
	switch idx.kind {
	case kindSingle:
		return fmt.Sprintf("[%d]", idx.lo)
	case kindRange:
		return fmt.Sprintf("[%d:%d]", idx.lo, idx.hi)
	case kindMask:
		return fmt.Sprintf("mask%v", idx.mask)
	}
	return fmt.Sprintf("%v", idx.list)
}

// resolve turns idx into a list of row numbers valid for n rows.
func (idx Index) resolve(n int) ([]int, error) {
	switch idx.kind {
	case kindSingle:
		if idx.lo < 0 || idx.lo >= n {
			return nil, &IndexError{Index: idx.lo, Len: n}
		}
		return []int{idx.lo}, nil
	case kindRange:
		if idx.lo < 0 || idx.lo > n {
			return nil, &IndexError{Index: idx.lo, Len: n}
		}
		if idx.hi < idx.lo || idx.hi > n {
			return nil, &IndexError{Index: idx.hi, Len: n}
		}
		rows := make([]int, 0, idx.hi-idx.lo)
		for i := idx.lo; i < idx.hi; i++ {
			rows = append(rows, i)
		}
		return rows, nil
	case kindMask:
		if len(idx.mask) != n {
			return nil, &ShapeError{
				Want: fmt.Sprintf("mask of length %d", n),
				Got:  fmt.Sprintf("mask of length %d", len(idx.mask)),
			}
		}
		rows := make([]int, 0)
		for i, set := range idx.mask {
			if set {
				rows = append(rows, i)
			}
		}
		return rows, nil
	}
	for _, i := range idx.list {
		if i < 0 || i >= n {
			return nil, &IndexError{Index: i, Len: n}
		}
	}
	rows := make([]int, len(idx.list))
	copy(rows, idx.list)
	return rows, nil
}

func (p *Points) checkIndex(i int) error {
	if i < 0 || i >= p.Len() {
		return &IndexError{Index: i, Len: p.Len()}
	}
	return nil
}

// At returns point i. It panics if i is out of range, like indexing a slice.
func (p *Points) At(i int) Coords {
	if err := p.checkIndex(i); err != nil {
		panic(err)
	}
	return p.row(i)
}

// Get returns point i, or an *IndexError if i is out of range.
func (p *Points) Get(i int) (Coords, error) {
	if err := p.checkIndex(i); err != nil {
		return Coords{}, err
	}
	return p.row(i), nil
}

// Set overwrites point i with v.
func (p *Points) Set(i int, v Coords) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.setRow(i, v)
	return nil
}

// Rows returns copies of the rows selected by idx.
func (p *Points) Rows(idx Index) ([]Coords, error) {
	rows, err := idx.resolve(p.Len())
	if err != nil {
		return nil, err
	}
	cs := make([]Coords, len(rows))
	for k, i := range rows {
		cs[k] = p.row(i)
	}
	return cs, nil
}

// Select returns a new point set holding copies of the rows selected by idx.
func (p *Points) Select(idx Index) (*Points, error) {
	cs, err := p.Rows(idx)
	if err != nil {
		return nil, err
	}
	return New(cs), nil
}

// Assign overwrites every row selected by idx with v.
func (p *Points) Assign(idx Index, v Coords) error {
	rows, err := idx.resolve(p.Len())
	if err != nil {
		return err
	}
	for _, i := range rows {
		p.setRow(i, v)
	}
	return nil
}

// AssignRows overwrites the rows selected by idx with vs, pairwise. A
// *ShapeError is returned if the number of values does not match the number
// of selected rows. Nothing is written on error.
func (p *Points) AssignRows(idx Index, vs []Coords) error {
	rows, err := idx.resolve(p.Len())
	if err != nil {
		return err
	}
	if len(rows) != len(vs) {
		return &ShapeError{
			Want: fmt.Sprintf("(%d, 3)", len(rows)),
			Got:  fmt.Sprintf("(%d, 3)", len(vs)),
		}
	}
	for k, i := range rows {
		p.setRow(i, vs[k])
	}
	return nil
}
