package space

import (
	"fmt"
)

// ShapeError is returned when coordinates are not triples, or when two point
// sets that must have the same shape do not.
type ShapeError struct {
	Want, Got string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("space: expected shape %s but got %s", e.Want, e.Got)
}

// DegenerateAxisError is returned by RotateOver when the two points defining
// the rotation axis coincide.
type DegenerateAxisError struct {
	From, To int
}

func (e *DegenerateAxisError) Error() string {
	return fmt.Sprintf("space: points %d and %d coincide and cannot define "+
		"a rotation axis", e.From, e.To)
}

// IndexError is returned when an index does not fall in [0, Len).
type IndexError struct {
	Index, Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("space: index %d out of range for %d points",
		e.Index, e.Len)
}
