package space

import (
	"errors"
	"testing"
)

func testPoints() *Points {
	return New([]Coords{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {3, 3, 3}})
}

func TestRowsSelect(t *testing.T) {
	tests := []struct {
		idx      Index
		expected []Coords
	}{
		{Single(2), []Coords{{2, 2, 2}}},
		{Range(1, 3), []Coords{{1, 1, 1}, {2, 2, 2}}},
		{Range(4, 4), []Coords{}},
		{Mask([]bool{true, false, false, true}), []Coords{{0, 0, 0}, {3, 3, 3}}},
		{Indices(3, 0, 3), []Coords{{3, 3, 3}, {0, 0, 0}, {3, 3, 3}}},
	}
	p := testPoints()
	for _, test := range tests {
		rows, err := p.Rows(test.idx)
		if err != nil {
			t.Fatalf("%s: %s", test.idx, err)
		}
		if len(rows) != len(test.expected) {
			t.Fatalf("%s: expected %v but got %v", test.idx, test.expected, rows)
		}
		for i := range rows {
			if rows[i] != test.expected[i] {
				t.Fatalf("%s: expected %v but got %v",
					test.idx, test.expected, rows)
			}
		}

		sel, err := p.Select(test.idx)
		if err != nil {
			t.Fatalf("%s: %s", test.idx, err)
		}
		if !sel.Equal(New(test.expected)) {
			t.Fatalf("%s: Select gave\n%s", test.idx, sel)
		}
	}
}

func TestSelectCopies(t *testing.T) {
	p := testPoints()
	sel, err := p.Select(Range(0, 2))
	if err != nil {
		t.Fatal(err)
	}
	sel.Translate(Coords{10, 10, 10})
	if p.At(0) != (Coords{0, 0, 0}) {
		t.Fatalf("moving a selection moved the original: %v", p.At(0))
	}
}

func TestIndexErrors(t *testing.T) {
	p := testPoints()
	var indexErr *IndexError
	var shapeErr *ShapeError

	for _, idx := range []Index{
		Single(4), Single(-1), Range(-1, 2), Range(3, 2), Range(0, 5),
		Indices(0, 7),
	} {
		if _, err := p.Rows(idx); !errors.As(err, &indexErr) {
			t.Fatalf("%s: expected an IndexError but got %v", idx, err)
		}
	}
	if _, err := p.Rows(Mask([]bool{true})); !errors.As(err, &shapeErr) {
		t.Fatalf("expected a ShapeError for a short mask but got %v", err)
	}
	if _, err := p.Get(4); !errors.As(err, &indexErr) {
		t.Fatalf("expected an IndexError from Get but got %v", err)
	}
	if err := p.Set(-2, Coords{}); !errors.As(err, &indexErr) {
		t.Fatalf("expected an IndexError from Set but got %v", err)
	}
}

func TestAtPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("At(4) on 4 points did not panic")
		}
	}()
	testPoints().At(4)
}

func TestAssign(t *testing.T) {
	p := testPoints()
	if err := p.Assign(Mask([]bool{false, true, true, false}), Coords{9, 9, 9}); err != nil {
		t.Fatal(err)
	}
	expected := New([]Coords{{0, 0, 0}, {9, 9, 9}, {9, 9, 9}, {3, 3, 3}})
	if !p.Equal(expected) {
		t.Fatalf("expected\n%s\nbut got\n%s", expected, p)
	}

	if err := p.AssignRows(Indices(3, 0), []Coords{{7, 7, 7}, {8, 8, 8}}); err != nil {
		t.Fatal(err)
	}
	expected = New([]Coords{{8, 8, 8}, {9, 9, 9}, {9, 9, 9}, {7, 7, 7}})
	if !p.Equal(expected) {
		t.Fatalf("expected\n%s\nbut got\n%s", expected, p)
	}

	var shapeErr *ShapeError
	err := p.AssignRows(Range(0, 2), []Coords{{1, 1, 1}})
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected a ShapeError but got %v", err)
	}
	if !p.Equal(expected) {
		t.Fatalf("a failed AssignRows modified the points:\n%s", p)
	}
}

func TestGetSet(t *testing.T) {
	p := testPoints()
	if err := p.Set(1, Coords{-1, 0, 1}); err != nil {
		t.Fatal(err)
	}
	c, err := p.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if c != (Coords{-1, 0, 1}) {
		t.Fatalf("expected (-1, 0, 1) but got %v", c)
	}
}
