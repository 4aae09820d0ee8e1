package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortunelog/fortunelog-dev/internal/config"
	"github.com/fortunelog/fortunelog-dev/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "init",
		Short:       "Write a default config.yaml",
		Long:        "Create the configuration directory and a default config.yaml with the bootRun task. An existing file is left alone.",
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := paths.ProjectConfigDir(a.flags.configDir)
			if err != nil {
				return sysError(err)
			}
			written, err := config.WriteDefault(dir)
			if err != nil {
				return sysError(err)
			}
			path := config.Path(dir)
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			}
			return nil
		},
	}
}
