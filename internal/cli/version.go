package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/pkg/stacked"
)

const modulePath = "github.com/mesh-intelligence/stacked"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stacked version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "stacked v%s\nmodule: %s\n", stacked.Version, modulePath)
			return nil
		},
	}
}
