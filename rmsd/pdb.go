package rmsd

import (
	"fmt"

	"github.com/BurntSushi/dockgo/pdb"
)

// PDB is a convenience function for computing the RMSD between two sets of
// residues, where each set is take from a chain of a PDB entry. Note that RMSD
// is only computed using carbon-alpha atoms.
//
// Each set of atoms to be used is specified by a four-tuple: a PDB entry file,
// a chain identifier, and the start and end residue numbers to use as a range.
// (Where the range is inclusive.)
//
// An error will be returned if: chainId{1,2} does not correspond to a chain
// in entry{1,2}. The ranges specified by start{1,2}-end{1,2} are not valid.
// The ranges specified by start{1,2}-end{1,2} do not correspond to precisely
// the same number of carbon-alpha atoms.
func PDB(entry1 *pdb.Entry, chainId1 byte, start1, end1 int,
	entry2 *pdb.Entry, chainId2 byte, start2, end2 int) (float64, error) {

	chain1, ok := entry1.Chains[chainId1]
	if !ok {
		return 0.0, fmt.Errorf("The chain '%c' could not be found in '%s'.",
			chainId1, entry1.Name())
	}
	chain2, ok := entry2.Chains[chainId2]
	if !ok {
		return 0.0, fmt.Errorf("The chain '%c' could not be found in '%s'.",
			chainId2, entry2.Name())
	}

	struct1 := chain1.CaRange(start1, end1)
	struct2 := chain2.CaRange(start2, end2)

	// Verify that neither of the atom sets is 0.
	if struct1.Len() == 0 {
		return 0.0, fmt.Errorf("The range '%d-%d' (for chain %c in %s) does "+
			"not correspond to any carbon-alpha ATOM records.",
			start1, end1, chainId1, entry1.Name())
	}
	if struct2.Len() == 0 {
		return 0.0, fmt.Errorf("The range '%d-%d' (for chain %c in %s) does "+
			"not correspond to any carbon-alpha ATOM records.",
			start2, end2, chainId2, entry2.Name())
	}

	// If we don't have the same number of atoms from each chain, we can't
	// compute RMSD.
	if struct1.Len() != struct2.Len() {
		return 0.0, fmt.Errorf("The range '%d-%d' (%d ATOM records for chain "+
			"%c in %s) does not correspond to the same number of carbon-alpha "+
			"atoms as the range '%d-%d' (%d ATOM records for chain %c in %s). "+
			"It is possible that the PDB file does not contain a carbon-alpha "+
			"atom for every residue index in the ranges.",
			start1, end1, struct1.Len(), chainId1, entry1.Name(),
			start2, end2, struct2.Len(), chainId2, entry2.Name())
	}

	return RMSD(struct1, struct2)
}
