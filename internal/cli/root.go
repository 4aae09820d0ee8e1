// Package cli implements the fortunelog-dev command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fortunelog/fortunelog-dev/internal/config"
	"github.com/fortunelog/fortunelog-dev/internal/ctxlog"
	"github.com/fortunelog/fortunelog-dev/internal/paths"
	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// annotationNoConfig marks commands that run without loading config.yaml.
const annotationNoConfig = "fortunelog/no-config"

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	logLevel  string
	logFormat string
}

// app is the state shared by one command tree.
type app struct {
	flags rootFlags
	cfg   types.Config
}

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// NewRootCmd creates the top-level "fortunelog-dev" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fortunelog-dev",
		Short: "Local development launcher for FortuneLog services",
		Long: `fortunelog-dev seeds local launches with the variables of a .env file
and simulates the splash bridge between the iOS shell and the Flutter app.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.fortunelog or the user config dir)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.flags.logFormat, "log-format", ctxlog.FormatText, "log format: text or json")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newEnvCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newSplashCmd(a))

	return root
}

// setup builds the logger and loads configuration before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	logger, err := ctxlog.New(cmd.ErrOrStderr(), a.flags.logLevel, a.flags.logFormat)
	if err != nil {
		return userError(err)
	}
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	if cmd.Annotations[annotationNoConfig] != "" {
		return nil
	}

	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return userError(fmt.Errorf("load config: %w", err))
	}
	logger.Debug("config loaded", "dir", dir, "tasks", len(cfg.Tasks))
	a.cfg = cfg
	return nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, NewRootCmd(), os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(root.ErrOrStderr(), "error:", err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
