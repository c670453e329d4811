package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// targetArgs holds the arguments after the mage target name, e.g.
// ["-run", "TestGallery"] for "mage test:unit -run TestGallery". Mage
// itself only sees the binary, its own flags and the target.
var targetArgs []string

func init() {
	// go test binaries carry their own flags.
	if strings.HasSuffix(os.Args[0], ".test") {
		return
	}
	os.Args, targetArgs = splitTargetArgs(os.Args)
}

// splitTargetArgs cuts args after the first non-flag argument following
// the binary name.
func splitTargetArgs(args []string) (mage, rest []string) {
	for i := 1; i < len(args); i++ {
		if args[i] == "--" {
			break
		}
		if !strings.HasPrefix(args[i], "-") {
			return args[:i+1], args[i+1:]
		}
	}
	return args, nil
}

// unitFlags are the go test flags test:unit passes through.
type unitFlags struct {
	run   string
	count int
}

func parseUnitFlags(args []string) (unitFlags, error) {
	var f unitFlags
	fs := flag.NewFlagSet("test:unit", flag.ContinueOnError)
	fs.StringVar(&f.run, "run", "", "only run tests matching this pattern")
	fs.IntVar(&f.count, "count", 0, "run each test n times (0 uses the cache)")
	if err := fs.Parse(args); err != nil {
		return unitFlags{}, fmt.Errorf("test:unit: %w", err)
	}
	return f, nil
}

// goTestArgs renders the flags as go test arguments.
func (f unitFlags) goTestArgs() []string {
	var out []string
	if f.run != "" {
		out = append(out, "-run", f.run)
	}
	if f.count > 0 {
		out = append(out, fmt.Sprintf("-count=%d", f.count))
	}
	return out
}
