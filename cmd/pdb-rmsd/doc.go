/*
pdb-rmsd computes the RMSD between two sets of carbon-alpha ATOM records read
from PDB files. Namely, each set of ATOM records is specified by a four-tuple:
a PDB file path, a chain identifier, and an inclusive range of residue indices.
Notably, both sets of cabon-alpha ATOM records must be exactly the same size.

A PDB file may either be plain text or compressed using the Lempel-Ziv coding
(i.e., gzip). If the PDB file is gzipped, it must end with a '.gz' extension.

Usage:

	pdb-rmsd pdb-file chain-id start stop pdb-file chain-id start stop

# Details

The two sets are superimposed with the Kabsch algorithm before the RMSD is
computed, so rigidly moved copies of a structure have an RMSD of zero.
*/
package main
