/*
Package rmsd computes the root mean square deviation between two paired sets
of points. RMSD superimposes the sets first using the Kabsch algorithm, which
is described in detail here: http://cnx.org/content/m11608/latest/

Raw compares the sets in place, which is what a docking search wants when
two poses of the same molecule live in the same frame.

A convenience function for computing the RMSD of residue ranges from two PDB
files is also provided.
*/
package rmsd
