package util

import (
	"strconv"

	"github.com/BurntSushi/dockgo/pdb"
	"github.com/BurntSushi/dockgo/transform"
)

func PDBRead(path string) *pdb.Entry {
	entry, err := pdb.Read(path)
	Assert(err, "Could not open PDB file '%s'", path)
	return entry
}

func ScriptRead(path string) *transform.Script {
	script, err := transform.Read(path)
	Assert(err, "Could not read move script '%s'", path)
	return script
}

func ParseInt(str string) int {
	num, err := strconv.ParseInt(str, 10, 32)
	Assert(err, "Could not parse '%s' as an integer", str)
	return int(num)
}
