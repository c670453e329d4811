package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/tui"
)

func newTUICmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse stacks in the terminal gallery",
		Long: `Opens the full-screen gallery. Search with /, cycle the sort with s,
add a stack with a, open one with enter, and toggle dark mode with t.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(a *app.App) error {
				return tui.Run(a, s.logger)
			})
		},
	}
}
