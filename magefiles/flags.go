//go:build mage

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// targetArgs are the arguments after the target name. Mage itself only
// passes positional parameters, so init moves them out of os.Args and
// targets such as Run parse them with their own FlagSet:
//
//	mage run --task bootRun --env-file ../.env
var targetArgs []string

func init() {
	if len(os.Args) < 2 {
		return
	}

	// The target is the first argument that is not a mage flag.
	targetIdx := -1
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--" {
			break
		}
		if os.Args[i] != "" && os.Args[i][0] != '-' {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 || targetIdx+1 >= len(os.Args) {
		return
	}

	targetArgs = os.Args[targetIdx+1:]
	os.Args = os.Args[:targetIdx+1]
}

// parseTargetFlags fills fs from targetArgs, exiting on -h or a bad flag.
func parseTargetFlags(fs *flag.FlagSet) {
	err := fs.Parse(targetArgs)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
