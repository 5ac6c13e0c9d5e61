package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"sync"
	"time"

	"github.com/BurntSushi/dockgo/cmd/util"
	"github.com/BurntSushi/dockgo/pdb"
	"github.com/BurntSushi/dockgo/quaternion"
	"github.com/BurntSushi/dockgo/rmsd"
	"github.com/BurntSushi/dockgo/space"
	"github.com/BurntSushi/dockgo/transform"
)

var (
	flagSpin = false
	flagSeed = time.Now().UnixNano()
)

func init() {
	flag.BoolVar(&flagSpin, "spin", flagSpin,
		"When set, each structure is given a random rotation about its\n"+
			"centroid after the move script is applied.")
	flag.Int64Var(&flagSeed, "seed", flagSeed,
		"The seed used to generate random rotations for -spin.")

	util.FlagUse("cpu", "verbose", "out-dir", "chain")
	util.FlagParse("move-script pdb-file ...",
		"Applies a move script to the atoms of each PDB file.")
	util.AssertLeastNArg(2)

	if util.NArg() > 2 && len(util.FlagOutDir) == 0 {
		util.Fatalf("An -out-dir must be given when moving more than one " +
			"PDB file.")
	}
}

// job is one PDB file to move, with the rotation -spin gives it. Rotations
// are drawn up front so that -seed gives the same result with any -cpu.
type job struct {
	file string
	spin quaternion.Q
}

func main() {
	script := util.ScriptRead(util.Arg(0))
	pdbFiles := util.Args()[1:]

	rng := rand.New(rand.NewSource(flagSeed))
	jobs := make(chan job)
	progress := util.NewProgress(len(pdbFiles))
	wg := new(sync.WaitGroup)
	for i := 0; i < max(1, util.FlagCpu); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				progress.JobDone(j.file, move(script, j))
			}
		}()
	}
	for _, pdbFile := range pdbFiles {
		j := job{file: pdbFile, spin: quaternion.Identity()}
		if flagSpin {
			j.spin = quaternion.Random(rng)
		}
		jobs <- j
	}
	close(jobs)
	wg.Wait()
	if failed := progress.Close(); failed > 0 {
		util.Fatalf("%d of %d files could not be moved.", failed, len(pdbFiles))
	}
}

// move reads one PDB file, moves its atoms and writes it out. With -chain,
// only the atoms of that chain are moved and the script's atom indices count
// from the first of them. Each job owns its entry and point set exclusively.
func move(script *transform.Script, j job) error {
	entry, err := pdb.Read(j.file)
	if err != nil {
		return err
	}
	all := entry.Points()
	sel := space.Range(0, all.Len())
	var chain *pdb.Chain
	if len(util.FlagChain) > 0 {
		ident := util.FlagChain[0]
		indices := entry.ChainIndices(ident)
		if len(indices) == 0 {
			return fmt.Errorf("no atoms in chain %c", ident)
		}
		sel = space.Indices(indices...)
		chain = entry.Chains[ident]
	}

	before, err := all.Select(sel)
	if err != nil {
		return err
	}
	moved := before.Clone()
	if err := script.Apply(moved); err != nil {
		return err
	}
	if flagSpin {
		centroid := moved.Center()
		moved.Rotate(j.spin)
		moved.Translate(centroid)
	}
	if err := all.AssignRows(sel, moved.Coords()); err != nil {
		return err
	}

	var caBefore *space.Points
	if chain != nil {
		caBefore = chain.CaPoints()
	}
	if err := entry.SetPoints(all); err != nil {
		return err
	}

	if raw, err := rmsd.Raw(before, moved); err == nil {
		util.Verbosef("%s: moved %d atoms (RMSD %0.3f from input)\n",
			j.file, moved.Len(), raw)
	}
	if caBefore != nil && caBefore.Len() > 0 {
		if rms, err := rmsd.RMSD(caBefore, chain.CaPoints()); err == nil {
			util.Verbosef("%s: chain %c CA RMSD after superposition %0.3f\n",
				j.file, chain.Ident, rms)
		}
	}
	return write(entry, j.file)
}

func write(entry *pdb.Entry, pdbFile string) error {
	var w io.Writer = os.Stdout
	if len(util.FlagOutDir) > 0 {
		name := path.Base(pdbFile)
		if path.Ext(name) == ".gz" {
			name = name[:len(name)-len(".gz")]
		}
		f, err := os.Create(path.Join(util.FlagOutDir, name))
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err := entry.WriteTo(w)
	return err
}
