/*
Package space implements a set of points in 3D space that can be moved as a
rigid body. It is the primitive a docking search uses to reposition a
molecule: the whole set can be translated or rotated by a quaternion, and a
subset of the points can be rotated about an axis running through two other
points of the set (e.g., a side chain rotating about a bond).

A Points value owns its coordinates. Nothing returned by its methods aliases
the internal buffer, and a Points value must not be mutated from more than one
goroutine at a time.
*/
package space

import (
	"fmt"
	"iter"
	"math"

	"github.com/BurntSushi/dockgo/quaternion"

	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerances used by Equal. They match the usual "all close" defaults.
const (
	absTol = 1e-8
	relTol = 1e-5
)

// Coords is a single point (or vector) in 3D space.
type Coords [3]float64

// Add returns c + o.
func (c Coords) Add(o Coords) Coords {
	return Coords{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

// Sub returns c - o.
func (c Coords) Sub(o Coords) Coords {
	return Coords{c[0] - o[0], c[1] - o[1], c[2] - o[2]}
}

// Scale returns c multiplied by s.
func (c Coords) Scale(s float64) Coords {
	return Coords{c[0] * s, c[1] * s, c[2] * s}
}

// Norm returns the Euclidean length of c.
func (c Coords) Norm() float64 {
	return math.Hypot(math.Hypot(c[0], c[1]), c[2])
}

// Points is a set of N points stored in a dense, row-major N x 3 buffer.
type Points struct {
	coords []float64
}

// New creates a point set from a list of coordinates. The coordinates are
// copied.
func New(coords []Coords) *Points {
	p := &Points{coords: make([]float64, 3*len(coords))}
	for i, c := range coords {
		copy(p.coords[3*i:3*i+3], c[:])
	}
	return p
}

// NewFlat creates a point set from a flat buffer laid out as
// x0, y0, z0, x1, y1, z1, .... The buffer is copied. A *ShapeError is
// returned if its length is not a multiple of 3.
func NewFlat(values []float64) (*Points, error) {
	if len(values)%3 != 0 {
		return nil, &ShapeError{
			Want: "(N, 3)",
			Got:  fmt.Sprintf("%d values", len(values)),
		}
	}
	p := &Points{coords: make([]float64, len(values))}
	copy(p.coords, values)
	return p, nil
}

// FromRows creates a point set from rows of arbitrary length. A *ShapeError
// is returned if any row does not have exactly 3 components.
func FromRows(rows [][]float64) (*Points, error) {
	p := &Points{coords: make([]float64, 3*len(rows))}
	for i, row := range rows {
		if len(row) != 3 {
			return nil, &ShapeError{
				Want: "(N, 3)",
				Got:  fmt.Sprintf("row %d with %d components", i, len(row)),
			}
		}
		copy(p.coords[3*i:3*i+3], row)
	}
	return p, nil
}

// Clone returns a deep copy of p. Mutating either copy never affects the
// other.
func (p *Points) Clone() *Points {
	q := &Points{coords: make([]float64, len(p.coords))}
	copy(q.coords, p.coords)
	return q
}

// Len returns the number of points.
func (p *Points) Len() int {
	return len(p.coords) / 3
}

// Shape returns the dimensions of the coordinate buffer: (N, 3).
func (p *Points) Shape() (int, int) {
	return p.Len(), 3
}

// row returns the i-th row without bounds checks beyond the slice's own.
func (p *Points) row(i int) Coords {
	return Coords{p.coords[3*i], p.coords[3*i+1], p.coords[3*i+2]}
}

func (p *Points) setRow(i int, c Coords) {
	p.coords[3*i], p.coords[3*i+1], p.coords[3*i+2] = c[0], c[1], c[2]
}

// Translate adds v to every point.
func (p *Points) Translate(v Coords) {
	for i := 0; i < len(p.coords); i += 3 {
		p.coords[i] += v[0]
		p.coords[i+1] += v[1]
		p.coords[i+2] += v[2]
	}
}

// Rotate applies the rotation q to every point. Points are rotated as
// vectors from the coordinate origin. q is not normalized.
func (p *Points) Rotate(q quaternion.Q) {
	for i, n := 0, p.Len(); i < n; i++ {
		p.setRow(i, q.Rotate(p.row(i)))
	}
}

// RotateOver rotates the points at indices by angle radians about the line
// running from point axis[0] to point axis[1]. Positive angles follow the
// right-hand rule about that direction.
//
// All indices are checked before anything is moved, so on error p is left
// untouched. An *IndexError is returned for any index out of range and a
// *DegenerateAxisError when the two axis points coincide. An axis whose
// length is not finite is also an error. The axis points
// may themselves appear in indices; they lie on the axis and do not move.
func (p *Points) RotateOver(axis [2]int, indices []int, angle float64) error {
	n := p.Len()
	for _, i := range axis {
		if i < 0 || i >= n {
			return &IndexError{Index: i, Len: n}
		}
	}
	for _, i := range indices {
		if i < 0 || i >= n {
			return &IndexError{Index: i, Len: n}
		}
	}

	origin := p.row(axis[0])
	dir := p.row(axis[1]).Sub(origin)
	norm := dir.Norm()
	if norm == 0 {
		return &DegenerateAxisError{From: axis[0], To: axis[1]}
	}
	if math.IsInf(norm, 0) || math.IsNaN(norm) {
		return fmt.Errorf("space: axis from point %d to point %d has "+
			"length %g", axis[0], axis[1], norm)
	}
	q := quaternion.FromAxisAngle(dir.Scale(1/norm), angle)

	for _, i := range indices {
		rotated := Coords(q.Rotate(p.row(i).Sub(origin)))
		p.setRow(i, rotated.Add(origin))
	}
	return nil
}

// Centroid returns the average position of all points. The centroid of an
// empty set is the origin.
func (p *Points) Centroid() Coords {
	var c Coords
	n := p.Len()
	if n == 0 {
		return c
	}
	for i := 0; i < n; i++ {
		c = c.Add(p.row(i))
	}
	return c.Scale(1 / float64(n))
}

// Center translates p so that its centroid is at the origin, and returns
// the centroid it had before.
func (p *Points) Center() Coords {
	c := p.Centroid()
	p.Translate(c.Scale(-1))
	return c
}

// Distance returns the Euclidean distance between points i and j.
func (p *Points) Distance(i, j int) (float64, error) {
	if err := p.checkIndex(i); err != nil {
		return 0, err
	}
	if err := p.checkIndex(j); err != nil {
		return 0, err
	}
	return p.row(i).Sub(p.row(j)).Norm(), nil
}

// All returns an iterator over the points of p in index order. Each call
// starts a fresh iteration; the yielded coordinates are copies.
func (p *Points) All() iter.Seq2[int, Coords] {
	return func(yield func(int, Coords) bool) {
		for i := 0; i < p.Len(); i++ {
			if !yield(i, p.row(i)) {
				return
			}
		}
	}
}

// Coords returns a copy of every point in p.
func (p *Points) Coords() []Coords {
	cs := make([]Coords, p.Len())
	for i := range cs {
		cs[i] = p.row(i)
	}
	return cs
}

// Equal reports whether p and o have the same number of points and every
// coordinate of p is close to the corresponding coordinate of o, within an
// absolute or relative tolerance. It is not bit-exact equality.
func (p *Points) Equal(o *Points) bool {
	if len(p.coords) != len(o.coords) {
		return false
	}
	for i, v := range p.coords {
		if !scalar.EqualWithinAbsOrRel(v, o.coords[i], absTol, relTol) {
			return false
		}
	}
	return true
}

// NotEqual is the negation of Equal.
func (p *Points) NotEqual(o *Points) bool {
	return !p.Equal(o)
}

// Sub returns the element-wise difference p - o as an N x 3 matrix. Neither
// operand is modified. A *ShapeError is returned if the shapes differ.
func (p *Points) Sub(o *Points) (*matrix.DenseMatrix, error) {
	if len(p.coords) != len(o.coords) {
		return nil, &ShapeError{
			Want: fmt.Sprintf("(%d, 3)", p.Len()),
			Got:  fmt.Sprintf("(%d, 3)", o.Len()),
		}
	}
	diff := make([]float64, len(p.coords))
	for i := range diff {
		diff[i] = p.coords[i] - o.coords[i]
	}
	return matrix.MakeDenseMatrix(diff, p.Len(), 3), nil
}

// Matrix returns a copy of the coordinates as an N x 3 matrix.
func (p *Points) Matrix() *matrix.DenseMatrix {
	elements := make([]float64, len(p.coords))
	copy(elements, p.coords)
	return matrix.MakeDenseMatrix(elements, p.Len(), 3)
}

// String dumps the coordinates. The format is for debugging only.
func (p *Points) String() string {
	if p.Len() == 0 {
		return "{}"
	}
	return p.Matrix().String()
}
