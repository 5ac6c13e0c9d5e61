package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"
)

var (
	FlagCpu = runtime.NumCPU()

	FlagVerbose = false

	FlagOutDir = ""

	FlagChain = ""
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and extra information is printed to "+
					"stderr.")
		},
	},
	"out-dir": {
		set: func() {
			flag.StringVar(&FlagOutDir, "out-dir", FlagOutDir,
				"The directory to write output files to. When empty, output\n"+
					"is written to stdout.")
		},
		init: func() {
			if len(FlagOutDir) > 0 {
				AssertIsDir(FlagOutDir)
			}
		},
	},
	"chain": {
		set: func() {
			flag.StringVar(&FlagChain, "chain", FlagChain,
				"When set, only the atoms of the chain with this identifier\n"+
					"are used.")
		},
		init: func() {
			if len(FlagChain) > 1 {
				Fatalf("A chain identifier must be a single character, "+
					"but got '%s'.", FlagChain)
			}
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// Args just calls `flag.Args`.
func Args() []string {
	return flag.Args()
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
