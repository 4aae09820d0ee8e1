package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortunelog/fortunelog-dev/internal/launch"
	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

type runFlags struct {
	envFile string
	dryRun  bool
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [task] [-- extra args]",
		Short: "Launch a local task with its .env file injected",
		Long: `Launch a configured task. The task's dotenv file is parsed once and its
entries are added to the inherited environment before the process starts.
A missing or empty file leaves the environment untouched. Arguments after
"--" are appended to the task's arguments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := types.DefaultTaskName
			var extra []string
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				extra = args[dash:]
				args = args[:dash]
			}
			if len(args) > 1 {
				return userError(fmt.Errorf("expected at most one task, got %d", len(args)))
			}
			if len(args) == 1 {
				name = args[0]
			}
			return a.runTask(cmd, name, extra, f)
		},
	}
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "dotenv file to inject (default: the task's env_file)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the resolved launch without starting it")
	return cmd
}

func (a *app) runTask(cmd *cobra.Command, name string, extra []string, f runFlags) error {
	ctx := cmd.Context()

	tc, err := a.cfg.Task(name)
	if err != nil {
		return userError(fmt.Errorf("%w: %s", err, name))
	}
	envFile, err := a.envFilePath(f.envFile, name)
	if err != nil {
		return err
	}

	task := launch.FromConfig(name, tc, envFile)
	task.Args = append(task.Args, extra...)
	if err := launch.Prepare(ctx, &task); err != nil {
		return sysError(err)
	}

	if f.dryRun {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "task: %s\n", task.Name)
		fmt.Fprintf(out, "command: %s\n", strings.Join(append([]string{task.Command}, task.Args...), " "))
		if task.Dir != "" {
			fmt.Fprintf(out, "dir: %s\n", task.Dir)
		}
		fmt.Fprintf(out, "env file: %s\n", task.EnvFile)
		if len(task.Env) == 0 {
			fmt.Fprintln(out, "env: inherited unchanged")
			return nil
		}
		keys := make([]string, 0, len(task.Env))
		for k := range task.Env {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		fmt.Fprintf(out, "env: +%s\n", strings.Join(keys, " +"))
		return nil
	}

	r := &launch.Runner{
		Stdin:     os.Stdin,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
		WaitDelay: 5 * time.Second,
	}
	if err := r.Run(ctx, task); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &exitError{code: exitErr.ExitCode(), err: err}
		}
		return sysError(err)
	}
	return nil
}
