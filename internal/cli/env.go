package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fortunelog/fortunelog-dev/internal/dotenv"
	"github.com/fortunelog/fortunelog-dev/internal/paths"
	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Output formats for env print.
const (
	formatText   = "text"
	formatJSON   = "json"
	formatDotenv = "dotenv"
)

const maskedValue = "****"

type envFlags struct {
	file       string
	task       string
	format     string
	showValues bool
}

func newEnvCmd(a *app) *cobra.Command {
	var f envFlags
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect the .env file used for a launch",
	}
	cmd.PersistentFlags().StringVar(&f.file, "file", "", "dotenv file (default: the task's env_file)")
	cmd.PersistentFlags().StringVar(&f.task, "task", types.DefaultTaskName, "task whose env file is used")

	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the entries that would be injected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.envFilePath(f.file, f.task)
			if err != nil {
				return err
			}
			table, err := dotenv.Load(path)
			if err != nil {
				return sysError(err)
			}
			return printTable(cmd, table, f)
		},
	}
	printCmd.Flags().StringVar(&f.format, "format", formatText, "output format: text, json or dotenv")
	printCmd.Flags().BoolVar(&f.showValues, "show-values", false, "print values instead of masking them")

	lintCmd := &cobra.Command{
		Use:   "lint",
		Short: "Report lines that strict dotenv readers interpret differently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.envFilePath(f.file, f.task)
			if err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not found, nothing to inject\n", path)
				return nil
			}
			if err != nil {
				return sysError(err)
			}

			report, err := dotenv.Lint(content)
			if err != nil {
				return sysError(err)
			}
			out := cmd.OutOrStdout()
			if report.StrictErr != nil {
				fmt.Fprintf(out, "%s: rejected by strict dotenv: %v\n", path, report.StrictErr)
			}
			for _, d := range report.Differences {
				fmt.Fprintf(out, "%s: %s\n", path, d)
			}
			if !report.Clean() {
				return userError(fmt.Errorf("%s: %d key(s) read differently", path, len(report.Differences)))
			}
			fmt.Fprintf(out, "%s: ok (%d keys)\n", path, report.Table.Len())
			return nil
		},
	}

	cmd.AddCommand(printCmd, lintCmd)
	return cmd
}

// envFilePath resolves the dotenv file for taskName, honouring an explicit
// --file flag first.
func (a *app) envFilePath(flag, taskName string) (string, error) {
	if flag != "" {
		return paths.ResolveEnvFile(flag, "", "")
	}
	tc, err := a.cfg.Task(taskName)
	if err != nil {
		return "", userError(fmt.Errorf("%w: %s", err, taskName))
	}
	configured := tc.EnvFile
	if configured == "" {
		configured = a.cfg.EnvFile
	}
	path, err := paths.ResolveEnvFile("", configured, tc.Dir)
	if err != nil {
		return "", sysError(err)
	}
	return path, nil
}

func printTable(cmd *cobra.Command, table types.EnvTable, f envFlags) error {
	out := cmd.OutOrStdout()
	value := func(v string) string {
		if f.showValues || v == "" {
			return v
		}
		return maskedValue
	}

	switch strings.ToLower(f.format) {
	case formatText:
		for _, p := range table.Pairs() {
			fmt.Fprintf(out, "%s=%s\n", p.Key, value(p.Value))
		}
		return nil
	case formatJSON:
		type entry struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		entries := make([]entry, 0, table.Len())
		for _, p := range table.Pairs() {
			entries = append(entries, entry{Key: p.Key, Value: value(p.Value)})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case formatDotenv:
		masked := make([]types.Pair, 0, table.Len())
		for _, p := range table.Pairs() {
			masked = append(masked, types.Pair{Key: p.Key, Value: value(p.Value)})
		}
		s, err := dotenv.Export(types.NewEnvTable(masked...))
		if err != nil {
			return sysError(err)
		}
		if s != "" {
			fmt.Fprintln(out, s)
		}
		return nil
	default:
		return userError(fmt.Errorf("unknown format %q", f.format))
	}
}
