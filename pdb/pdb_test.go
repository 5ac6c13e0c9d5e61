package pdb

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/dockgo/space"
)

func atomLine(rec string, serial int, name, res string, chain byte,
	resi int, x, y, z float64) string {

	return fmt.Sprintf("%-6s%5d %-4s %3s %c%4d    %8.3f%8.3f%8.3f  1.00  0.00",
		rec, serial, name, res, chain, resi, x, y, z)
}

func samplePDB() string {
	lines := []string{
		"HEADER    TEST STRUCTURE",
		"SEQRES   1 A    3  MET GLY ALA",
		atomLine("ATOM", 1, "N", "MET", 'A', 1, 1.0, 2.0, 3.0),
		atomLine("ATOM", 2, "CA", "MET", 'A', 1, 2.0, 2.0, 3.0),
		atomLine("ATOM", 3, "CA", "GLY", 'A', 2, 3.5, 2.0, 3.0),
		atomLine("ATOM", 4, "CA", "ALA", 'A', 3, 5.0, 2.5, -1.0),
		atomLine("HETATM", 5, "O", "HOH", 'A', 10, 0.0, 0.0, 0.0),
		"END",
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestParse(t *testing.T) {
	entry, err := Parse(strings.NewReader(samplePDB()), "1abc.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name() != "1abc" {
		t.Fatalf("expected name 1abc but got %s", entry.Name())
	}
	if len(entry.Atoms) != 5 {
		t.Fatalf("expected 5 atoms but got %d", len(entry.Atoms))
	}
	if !entry.Atoms[4].Het || entry.Atoms[4].Residue != "HOH" {
		t.Fatalf("last atom should be a water HETATM: %+v", entry.Atoms[4])
	}

	chain, ok := entry.Chains['A']
	if !ok {
		t.Fatal("chain A is missing")
	}
	if string(chain.Sequence) != "MGA" {
		t.Fatalf("expected sequence MGA but got %s", chain.Sequence)
	}
	if chain.AtomResidueStart != 1 || chain.AtomResidueEnd != 3 {
		t.Fatalf("expected residue range 1-3 but got %d-%d",
			chain.AtomResidueStart, chain.AtomResidueEnd)
	}
	if len(chain.Atoms) != 4 || len(chain.CaAtoms) != 3 {
		t.Fatalf("expected 4 atoms and 3 CA atoms but got %d and %d",
			len(chain.Atoms), len(chain.CaAtoms))
	}

	ca := chain.CaRange(2, 3)
	expected := space.New([]space.Coords{{3.5, 2, 3}, {5, 2.5, -1}})
	if !ca.Equal(expected) {
		t.Fatalf("expected CA atoms\n%s\nbut got\n%s", expected, ca)
	}
}

func TestParseBadCoordinates(t *testing.T) {
	bad := "ATOM      1  CA  GLY A   1       1.000   abc      3.000\n"
	if _, err := Parse(strings.NewReader(bad), "bad.pdb"); err == nil {
		t.Fatal("expected an error for an unparseable coordinate")
	}
	short := "ATOM      1  CA  GLY A   1       1.000\n"
	if _, err := Parse(strings.NewReader(short), "short.pdb"); err == nil {
		t.Fatal("expected an error for a truncated ATOM record")
	}
}

func TestWriteMoved(t *testing.T) {
	entry, err := Parse(strings.NewReader(samplePDB()), "1abc.pdb")
	if err != nil {
		t.Fatal(err)
	}
	p := entry.Points()
	p.Translate(space.Coords{10, 0, -1})
	if err := entry.SetPoints(p); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	n, err := entry.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo reported %d bytes but wrote %d", n, buf.Len())
	}

	reread, err := Parse(&buf, "moved.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if !reread.Points().Equal(p) {
		t.Fatalf("expected\n%s\nbut read back\n%s", p, reread.Points())
	}
	if len(reread.lines) != len(entry.lines) {
		t.Fatalf("expected %d lines but got %d",
			len(entry.lines), len(reread.lines))
	}
	if got := string(reread.lines[0].raw); got != "HEADER    TEST STRUCTURE" {
		t.Fatalf("header record was not kept: %q", got)
	}
}

func TestSetPointsShape(t *testing.T) {
	entry, err := Parse(strings.NewReader(samplePDB()), "1abc.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if err := entry.SetPoints(space.New(nil)); err == nil {
		t.Fatal("expected a shape error")
	}
}

func TestReadGzip(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "1abc.pdb.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(samplePDB())); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fpath, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	entry, err := Read(fpath)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Name() != "1abc" {
		t.Fatalf("expected name 1abc but got %s", entry.Name())
	}
	if entry.Points().Len() != 5 {
		t.Fatalf("expected 5 atoms but got %d", entry.Points().Len())
	}
}

func TestWriteCoordinateOverflow(t *testing.T) {
	tests := []space.Coords{
		{-1500, 0, 0},
		{0, 10000, 0},
		{0, 0, -999.9996},
	}
	for _, shift := range tests {
		entry, err := Parse(strings.NewReader(samplePDB()), "1abc.pdb")
		if err != nil {
			t.Fatal(err)
		}
		p := entry.Points()
		p.Translate(shift)
		if err := entry.SetPoints(p); err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if _, err := entry.WriteTo(&buf); err == nil {
			t.Fatalf("expected an error writing atoms moved by %v but got\n%s",
				shift, buf.String())
		}
	}

	// The widest values that still fit.
	entry, err := Parse(strings.NewReader(samplePDB()), "1abc.pdb")
	if err != nil {
		t.Fatal(err)
	}
	for _, atom := range entry.Atoms {
		atom.Coords = space.Coords{-999.999, 9999.999, 0}
	}
	var buf bytes.Buffer
	if _, err := entry.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	reread, err := Parse(&buf, "wide.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if !reread.Points().Equal(entry.Points()) {
		t.Fatalf("expected\n%s\nbut read back\n%s",
			entry.Points(), reread.Points())
	}
}

func TestChainAtoms(t *testing.T) {
	two := strings.Join([]string{
		atomLine("ATOM", 1, "CA", "GLY", 'A', 1, 0, 0, 0),
		atomLine("ATOM", 2, "CA", "GLY", 'B', 1, 1, 0, 0),
		atomLine("ATOM", 3, "N", "ALA", 'B', 2, 2, 0, 0),
		atomLine("ATOM", 4, "CA", "ALA", 'B', 2, 3, 0, 0),
		atomLine("HETATM", 5, "O", "HOH", 'B', 10, 4, 0, 0),
	}, "\n")
	entry, err := Parse(strings.NewReader(two), "2abc.pdb")
	if err != nil {
		t.Fatal(err)
	}

	ca := entry.Chains['B'].CaPoints()
	expected := space.New([]space.Coords{{1, 0, 0}, {3, 0, 0}})
	if !ca.Equal(expected) {
		t.Fatalf("expected CA atoms\n%s\nbut got\n%s", expected, ca)
	}

	indices := entry.ChainIndices('B')
	if fmt.Sprint(indices) != "[1 2 3 4]" {
		t.Fatalf("expected chain B at [1 2 3 4] but got %v", indices)
	}
	if got := entry.ChainIndices('Z'); len(got) != 0 {
		t.Fatalf("expected no atoms for a missing chain but got %v", got)
	}

	// Move only chain B and check that chain A stays put while the CA atoms
	// of chain B follow.
	sel := space.Indices(indices...)
	all := entry.Points()
	chainB, err := all.Select(sel)
	if err != nil {
		t.Fatal(err)
	}
	chainB.Translate(space.Coords{0, 5, 0})
	if err := all.AssignRows(sel, chainB.Coords()); err != nil {
		t.Fatal(err)
	}
	if err := entry.SetPoints(all); err != nil {
		t.Fatal(err)
	}
	if c := entry.Atoms[0].Coords; c != (space.Coords{0, 0, 0}) {
		t.Fatalf("chain A atom moved to %v", c)
	}
	ca = entry.Chains['B'].CaPoints()
	expected = space.New([]space.Coords{{1, 5, 0}, {3, 5, 0}})
	if !ca.Equal(expected) {
		t.Fatalf("expected CA atoms\n%s\nbut got\n%s", expected, ca)
	}
}
