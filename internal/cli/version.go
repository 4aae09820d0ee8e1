package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the fortunelog-dev release.
const Version = "0.1.0"

const modulePath = "github.com/fortunelog/fortunelog-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the fortunelog-dev version",
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fortunelog-dev v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
