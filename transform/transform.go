/*
Package transform reads move scripts and applies them to point sets. A move
script is a YAML document listing rigid-body moves to perform in order:

	moves:
	  - translate: [1.0, 0, -2.5]
	  - rotate: [0.7071068, 0, 0.7071068, 0]   # w, x, y, z
	  - rotate_over:
	      axis: [1, 2]
	      atoms: [0, 3, 4]
	      angle: 90
	      degrees: true
	  - center: true

Each move sets exactly one action. Rotation quaternions are normalized before
use. Indices refer to points in the order the point set stores them, e.g.,
atom order in a PDB file.
*/
package transform

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/BurntSushi/dockgo/quaternion"
	"github.com/BurntSushi/dockgo/space"

	"gopkg.in/yaml.v3"
)

// Script is an ordered list of moves.
type Script struct {
	Moves []Move `yaml:"moves"`
}

// Move is a single step of a script. Exactly one field should be set.
type Move struct {
	Translate  []float64   `yaml:"translate,omitempty"`
	Rotate     []float64   `yaml:"rotate,omitempty"`
	RotateOver *RotateOver `yaml:"rotate_over,omitempty"`
	Center     bool        `yaml:"center,omitempty"`
}

// RotateOver rotates Atoms about the axis running from point Axis[0] to
// point Axis[1].
type RotateOver struct {
	Axis    []int   `yaml:"axis"`
	Atoms   []int   `yaml:"atoms"`
	Angle   float64 `yaml:"angle"`
	Degrees bool    `yaml:"degrees,omitempty"`
}

// Read parses the move script in the named file.
func Read(fileName string) (*Script, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return s, nil
}

// Parse reads a move script from r and checks that it is well formed.
// Unknown keys are an error.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := new(Script)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("transform: empty move script")
		}
		return nil, fmt.Errorf("transform: %w", err)
	}
	for i, m := range s.Moves {
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("transform: move %d: %w", i+1, err)
		}
	}
	return s, nil
}

// Marshal renders s as YAML.
func (s *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Apply performs every move of s on p, in order. The moves are made on a
// copy of p, which is only written back once every move has succeeded, so p
// is unchanged when an error is returned. Errors from package space are
// wrapped and can be inspected with errors.As.
func (s *Script) Apply(p *space.Points) error {
	work := p.Clone()
	for i, m := range s.Moves {
		if err := m.validate(); err != nil {
			return fmt.Errorf("transform: move %d: %w", i+1, err)
		}
		if err := m.apply(work); err != nil {
			return fmt.Errorf("transform: move %d: %w", i+1, err)
		}
	}
	return p.AssignRows(space.Range(0, p.Len()), work.Coords())
}

func (m Move) actions() int {
	n := 0
	if m.Translate != nil {
		n++
	}
	if m.Rotate != nil {
		n++
	}
	if m.RotateOver != nil {
		n++
	}
	if m.Center {
		n++
	}
	return n
}

func (m Move) validate() error {
	if n := m.actions(); n != 1 {
		return fmt.Errorf("expected exactly one action but found %d", n)
	}
	switch {
	case m.Translate != nil:
		if len(m.Translate) != 3 {
			return &space.ShapeError{
				Want: "translation vector of 3 components",
				Got:  fmt.Sprintf("%d components", len(m.Translate)),
			}
		}
	case m.Rotate != nil:
		if len(m.Rotate) != 4 {
			return &space.ShapeError{
				Want: "quaternion of 4 components",
				Got:  fmt.Sprintf("%d components", len(m.Rotate)),
			}
		}
		q := quaternion.New(m.Rotate[0], m.Rotate[1], m.Rotate[2], m.Rotate[3])
		if q.Norm() == 0 {
			return fmt.Errorf("the zero quaternion is not a rotation")
		}
	case m.RotateOver != nil:
		if len(m.RotateOver.Axis) != 2 {
			return &space.ShapeError{
				Want: "axis of 2 point indices",
				Got:  fmt.Sprintf("%d indices", len(m.RotateOver.Axis)),
			}
		}
	}
	return nil
}

func (m Move) apply(p *space.Points) error {
	switch {
	case m.Translate != nil:
		p.Translate(space.Coords{m.Translate[0], m.Translate[1], m.Translate[2]})
	case m.Rotate != nil:
		q := quaternion.New(m.Rotate[0], m.Rotate[1], m.Rotate[2], m.Rotate[3])
		p.Rotate(q.Normalize())
	case m.RotateOver != nil:
		ro := m.RotateOver
		angle := ro.Angle
		if ro.Degrees {
			angle = angle * math.Pi / 180.0
		}
		return p.RotateOver([2]int{ro.Axis[0], ro.Axis[1]}, ro.Atoms, angle)
	case m.Center:
		p.Center()
	}
	return nil
}
