/*
pdb-move applies a move script to the atoms of one or more PDB files and
writes the moved structures back out in PDB format. Only coordinates change;
every other record is written as it was read.

Usage:

	pdb-move [flags] move-script pdb-file ...

A move script is a YAML file listing translations, rotations and rotations of
a subset of atoms about an axis through two other atoms. Atom indices count
ATOM and HETATM records from 0, in file order:

	moves:
	  - center: true
	  - rotate: [0.7071068, 0, 0.7071068, 0]
	  - rotate_over: {axis: [1, 4], atoms: [5, 6, 7], angle: 120, degrees: true}
	  - translate: [10, 0, 0]

With a single PDB file and no -out-dir, the moved structure is written to
stdout. Otherwise each moved file is written to -out-dir under its original
name. With -spin, every structure also receives a random rotation about its
centroid after the script runs; -seed makes the rotations reproducible.

With -chain, only the ATOM and HETATM records of that chain are moved and the
script's atom indices count from the chain's first atom. Every other atom is
written as it was read. A file with a coordinate that no longer fits its PDB
column (e.g., x <= -1000) is reported as a failure and pdb-move exits with an
error once every file has been tried.
*/
package main
