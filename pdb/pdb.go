package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/dockgo/space"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// AminoOneToThree is the reverse of AminoThreeToOne. It is created in
// this packages 'init' function.
var AminoOneToThree = map[byte]string{}

func init() {
	for k, v := range AminoThreeToOne {
		AminoOneToThree[v] = k
	}
}

// Entry represents all information known about a particular PDB file (that
// has been implemented in this package).
//
// Every ATOM and HETATM record is kept in file order in Atoms. All other
// records are kept verbatim so that WriteTo can reproduce the file with
// moved coordinates.
type Entry struct {
	Path   string
	Chains map[byte]*Chain
	Atoms  []*Atom

	// lines holds every line of the file. A line belonging to an atom is
	// re-rendered from the atom when written.
	lines []pdbLine
}

type pdbLine struct {
	raw  []byte
	atom *Atom
}

// Atom is a single ATOM or HETATM record.
type Atom struct {
	Serial     int
	Name       string
	Residue    string
	ResidueInd int
	ChainID    byte
	Het        bool
	Coords     space.Coords
}

// Read creates a new PDB Entry from a file. If the file cannot be read, or
// there is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func Read(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Parse(reader, fileName)
}

// Parse reads a PDB entry from r. The name is only used in error messages
// and by Entry.Name.
func Parse(r io.Reader, name string) (*Entry, error) {
	entry := &Entry{
		Path:   name,
		Chains: make(map[byte]*Chain, 0),
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := append([]byte(nil), scanner.Bytes()...)
		l := pdbLine{raw: raw}

		// The record name is always in the first six columns.
		switch record(raw) {
		case "SEQRES":
			entry.parseSeqres(raw)
		case "ATOM", "HETATM":
			atom, err := entry.parseAtom(raw)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %s", name, lineNum, err)
			}
			l.atom = atom
		}
		entry.lines = append(entry.lines, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entry, nil
}

func record(raw []byte) string {
	if len(raw) < 6 {
		return strings.TrimSpace(string(raw))
	}
	return strings.TrimSpace(string(raw[0:6]))
}

// Name returns the base name of the file this entry was read from, without
// any ".gz" or ".pdb" extension.
func (e *Entry) Name() string {
	name := path.Base(e.Path)
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, path.Ext(name))
}

// String returns a sort list of all chains, their residue start/stop indics,
// and the amino acid sequence.
func (e *Entry) String() string {
	lines := make([]string, 0)
	for _, chain := range e.Chains {
		lines = append(lines, chain.String())
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// Points returns the coordinates of every atom in the entry, in file order.
func (e *Entry) Points() *space.Points {
	return atomPoints(e.Atoms)
}

// SetPoints overwrites the coordinates of every atom in the entry with the
// points in p, which must have one point per atom.
func (e *Entry) SetPoints(p *space.Points) error {
	if p.Len() != len(e.Atoms) {
		return &space.ShapeError{
			Want: fmt.Sprintf("(%d, 3)", len(e.Atoms)),
			Got:  fmt.Sprintf("(%d, 3)", p.Len()),
		}
	}
	for i, c := range p.All() {
		e.Atoms[i].Coords = c
	}
	return nil
}

// WriteTo writes the entry back out in PDB format. Records other than ATOM
// and HETATM are written unchanged; atom coordinates are rendered from the
// current value of each Atom's Coords.
//
// An error is returned, possibly after some records have been written, if a
// coordinate does not fit in its 8 column field (i.e., it is not in the
// range (-1000, 10000) once rounded to 3 decimal places).
func (e *Entry) WriteTo(w io.Writer) (int64, error) {
	buf := bufio.NewWriter(w)
	var written int64
	for _, l := range e.lines {
		raw := l.raw
		if l.atom != nil {
			var err error
			if raw, err = l.atom.record(raw); err != nil {
				if ferr := buf.Flush(); ferr != nil {
					return written, ferr
				}
				return written, err
			}
		}
		n, err := buf.Write(raw)
		written += int64(n)
		if err != nil {
			return written, err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return written, err
		}
		written++
	}
	return written, buf.Flush()
}

// getOrMakeChain looks for a chain in the 'Chains' map corresponding to the
// chain indentifier. If one exists, it is returned. If one doesn't exist,
// it is created, memory is allocated and it is returned.
func (e *Entry) getOrMakeChain(ident byte) *Chain {
	if chain, ok := e.Chains[ident]; ok {
		return chain
	}
	e.Chains[ident] = &Chain{
		Ident:    ident,
		Sequence: make([]byte, 0, 10),
	}
	return e.Chains[ident]
}

// parseSeqres loads all pertinent information from SEQRES records in a PDB
// file. In particular, amino acid resides are read and added to the chain's
// "Sequence" field. If a residue isn't a valid amino acid, it is simply
// ignored.
//
// N.B. This assumes that the SEQRES records are in order in the PDB file.
func (e *Entry) parseSeqres(line []byte) {
	if len(line) < 12 {
		return
	}
	chain := e.getOrMakeChain(line[11])

	// Residues are in columns 19-21, 23-25, 27-29, ..., 67-69
	for i := 19; i <= 67; i += 4 {
		end := i + 3

		// If we're passed the end of this line, quit.
		if end > len(line) {
			break
		}

		// Get the residue. If it's not in our sequence map, skip it.
		residue := strings.TrimSpace(string(line[i:end]))
		if single, ok := AminoThreeToOne[residue]; ok {
			chain.Sequence = append(chain.Sequence, single)
		}
	}
}

// parseAtom reads an ATOM or HETATM record: its serial number, atom name,
// residue, chain and coordinates (columns 31-54). Carbon-alpha atoms of amino
// acid residues are also added to their chain's CaAtoms, and the chain's
// residue range is widened to include the atom's residue.
func (e *Entry) parseAtom(line []byte) (*Atom, error) {
	if len(line) < 54 {
		return nil, fmt.Errorf("%s record has %d columns but coordinates "+
			"end at column 54", record(line), len(line))
	}

	atom := &Atom{
		Name:    strings.TrimSpace(string(line[12:16])),
		Residue: strings.TrimSpace(string(line[17:20])),
		ChainID: line[21],
		Het:     record(line) == "HETATM",
	}

	var err error
	if atom.Serial, err = columnInt(line[6:11]); err != nil {
		return nil, fmt.Errorf("bad serial number: %s", err)
	}
	if atom.ResidueInd, err = columnInt(line[22:26]); err != nil {
		return nil, fmt.Errorf("bad residue sequence number: %s", err)
	}
	for i, cols := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
		s := strings.TrimSpace(string(line[cols[0]:cols[1]]))
		if atom.Coords[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("bad coordinate in columns %d-%d: %s",
				cols[0]+1, cols[1], err)
		}
	}
	e.Atoms = append(e.Atoms, atom)

	// Residue bookkeeping only applies to amino acids.
	if _, ok := AminoThreeToOne[atom.Residue]; !ok || atom.Het {
		return atom, nil
	}
	chain := e.getOrMakeChain(atom.ChainID)
	chain.Atoms = append(chain.Atoms, atom)
	if atom.Name == "CA" {
		chain.CaAtoms = append(chain.CaAtoms, atom)
	}
	if chain.AtomResidueStart == 0 || atom.ResidueInd < chain.AtomResidueStart {
		chain.AtomResidueStart = atom.ResidueInd
	}
	if chain.AtomResidueEnd == 0 || atom.ResidueInd > chain.AtomResidueEnd {
		chain.AtomResidueEnd = atom.ResidueInd
	}
	return atom, nil
}

func columnInt(col []byte) (int, error) {
	s := strings.TrimSpace(string(col))
	if len(s) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	return int(n), err
}

// ChainIndices returns the positions in Atoms (and so in the point set
// returned by Points) of every ATOM and HETATM record with the given chain
// identifier.
func (e *Entry) ChainIndices(ident byte) []int {
	indices := make([]int, 0)
	for i, atom := range e.Atoms {
		if atom.ChainID == ident {
			indices = append(indices, i)
		}
	}
	return indices
}

// record renders the atom's ATOM/HETATM line, starting from the line it was
// read from, with the coordinate columns replaced.
func (a *Atom) record(orig []byte) ([]byte, error) {
	out := make([]byte, 0, len(orig))
	out = append(out, orig[:30]...)
	for i, c := range a.Coords {
		field := fmt.Sprintf("%8.3f", c)
		if len(field) > 8 {
			return nil, fmt.Errorf("atom %d (%s): coordinate %c = %s does "+
				"not fit in 8 columns", a.Serial, a.Name, "xyz"[i], field)
		}
		out = append(out, field...)
	}
	return append(out, orig[54:]...), nil
}

// Chain represents a protein chain or subunit in a PDB file. Each chain has
// its own identifier, amino acid sequence (if its a protein sequence), the
// start and stop residue indices of the ATOM coordinates and the atoms of
// its amino acid residues.
type Chain struct {
	Ident                            byte
	Sequence                         []byte
	AtomResidueStart, AtomResidueEnd int
	Atoms                            []*Atom
	CaAtoms                          []*Atom
}

// CaPoints returns the coordinates of the chain's carbon-alpha atoms.
func (c *Chain) CaPoints() *space.Points {
	return atomPoints(c.CaAtoms)
}

// CaRange returns the coordinates of the carbon-alpha atoms whose residue
// indices are in the inclusive range [start, end].
func (c *Chain) CaRange(start, end int) *space.Points {
	atoms := make([]*Atom, 0, max(0, end-start+1))
	for _, atom := range c.CaAtoms {
		if atom.ResidueInd >= start && atom.ResidueInd <= end {
			atoms = append(atoms, atom)
		}
	}
	return atomPoints(atoms)
}

// String returns a FASTA-like formatted string of this chain and all of its
// related information.
func (c *Chain) String() string {
	return fmt.Sprintf("> Chain %c (%d, %d) :: length %d\n%s",
		c.Ident, c.AtomResidueStart, c.AtomResidueEnd,
		len(c.Sequence), string(c.Sequence))
}

func atomPoints(atoms []*Atom) *space.Points {
	coords := make([]space.Coords, len(atoms))
	for i, atom := range atoms {
		coords[i] = atom.Coords
	}
	return space.New(coords)
}
