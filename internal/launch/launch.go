// Package launch prepares and starts local process-launch tasks. A task's
// environment is seeded from its dotenv file exactly once, before the
// process starts.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fortunelog/fortunelog-dev/internal/ctxlog"
	"github.com/fortunelog/fortunelog-dev/internal/dotenv"
	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Task is a named local process launch.
type Task struct {
	Name    string
	Command string
	Args    []string
	Dir     string

	// EnvFile is the dotenv file applied by Prepare. Empty means none.
	EnvFile string

	// Env holds variables set on top of the inherited environment. Nil means
	// the process inherits the parent environment unchanged.
	Env map[string]string
}

// FromConfig builds a Task from its configured definition. envFile is the
// already resolved dotenv path.
func FromConfig(name string, tc types.TaskConfig, envFile string) Task {
	return Task{
		Name:    name,
		Command: tc.Command,
		Args:    slices.Clone(tc.Args),
		Dir:     tc.Dir,
		EnvFile: envFile,
	}
}

// Inject merges table into task.Env, replacing entries with the same key. An
// empty table leaves the task untouched. It reports whether task.Env changed.
func Inject(task *Task, table types.EnvTable) bool {
	if table.IsEmpty() {
		return false
	}
	if task.Env == nil {
		task.Env = make(map[string]string, table.Len())
	}
	for _, p := range table.Pairs() {
		task.Env[p.Key] = p.Value
	}
	return true
}

// Prepare loads task.EnvFile and injects it. A missing file is logged and
// skipped; an unreadable file is returned as an error.
func Prepare(ctx context.Context, task *Task) error {
	logger := ctxlog.FromContext(ctx).With("task", task.Name)
	if task.EnvFile == "" {
		logger.Debug("no env file configured")
		return nil
	}

	table, err := dotenv.Load(task.EnvFile)
	if err != nil {
		return fmt.Errorf("load env file for %s: %w", task.Name, err)
	}
	if !Inject(task, table) {
		logger.Debug("env file empty or missing, environment unchanged", "path", task.EnvFile)
		return nil
	}
	logger.Info("injected env file", "path", task.EnvFile, "keys", table.Len())
	return nil
}

// Runner starts tasks as child processes.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ returns the inherited environment; os.Environ when nil.
	Environ func() []string

	// WaitDelay bounds how long Run waits for the child after ctx is done
	// before killing it.
	WaitDelay time.Duration
}

// Run starts task and waits for it to exit. Cancelling ctx sends an
// interrupt to the child, then a kill after WaitDelay.
func (r *Runner) Run(ctx context.Context, task Task) error {
	if task.Command == "" {
		return types.ErrCommandEmpty
	}
	id := uuid.New()
	logger := ctxlog.FromContext(ctx).With("task", task.Name, "launch_id", id.String())

	cmd := exec.CommandContext(ctx, task.Command, task.Args...)
	cmd.Dir = task.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = r.WaitDelay
	switch {
	case len(task.Env) > 0:
		cmd.Env = MergeEnv(r.environ(), task.Env)
	case r.Environ != nil:
		cmd.Env = r.Environ()
	}

	logger.Info("starting task", "command", task.Command, "args", task.Args, "dir", task.Dir, "injected", len(task.Env))
	start := time.Now()
	err := cmd.Run()

	elapsed := time.Since(start).Round(time.Millisecond)
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logger.Info("task finished", "elapsed", elapsed)
	case errors.As(err, &exitErr):
		logger.Warn("task exited with failure", "exit_code", exitErr.ExitCode(), "elapsed", elapsed)
	default:
		logger.Error("task failed to run", "err", err)
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", task.Name, err)
	}
	return nil
}

func (r *Runner) environ() []string {
	if r.Environ != nil {
		return r.Environ()
	}
	return os.Environ()
}

// MergeEnv returns base with overrides applied. Inherited entries whose key is
// overridden are dropped; overrides are appended in key order.
func MergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[k]; ok {
			continue
		}
		out = append(out, kv)
	}
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		out = append(out, k+"="+overrides[k])
	}
	return out
}
