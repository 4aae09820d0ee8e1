//go:build mage

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/magefile/mage/sh"

	"github.com/fortunelog/fortunelog-dev/internal/config"
	"github.com/fortunelog/fortunelog-dev/internal/dotenv"
	"github.com/fortunelog/fortunelog-dev/internal/paths"
	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Run launches a configured task with its .env file injected, the mage
// counterpart of "fortunelog-dev run".
//
//	mage run [--task bootRun] [--env-file path] [--config-dir dir]
func Run() error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	name := fs.String("task", types.DefaultTaskName, "task to launch")
	envFlag := fs.String("env-file", "", "dotenv file (default: the task's env_file)")
	configDir := fs.String("config-dir", "", "configuration directory")
	parseTargetFlags(fs)

	dir, err := paths.ResolveConfigDir(*configDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	tc, err := cfg.Task(*name)
	if err != nil {
		return fmt.Errorf("%w: %s", err, *name)
	}

	configured := tc.EnvFile
	if configured == "" {
		configured = cfg.EnvFile
	}
	envPath, err := paths.ResolveEnvFile(*envFlag, configured, tc.Dir)
	if err != nil {
		return err
	}
	table, err := dotenv.Load(envPath)
	if err != nil {
		return err
	}

	// sh runs in the current directory; move into the task's first.
	if tc.Dir != "" {
		if err := os.Chdir(tc.Dir); err != nil {
			return err
		}
	}

	// An empty table must not touch the inherited environment.
	var env map[string]string
	if !table.IsEmpty() {
		env = table.Map()
		fmt.Printf("injecting %d variables from %s\n", table.Len(), envPath)
	}
	return sh.RunWithV(env, tc.Command, tc.Args...)
}
