package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/theme"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stack with all of its layers",
		Long: `Show prints the detail view of a stack: its description and every
layer, top of the stack first. The rendering follows the stored display mode.

Example:
  stacked show 0190c1a2-...
  stacked show 0190c1a2-... --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(a *app.App) error {
				st, found, err := a.ShowDetail(args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("stack %q: %w", args[0], types.ErrNotFound)
				}
				if s.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), st)
				}

				mode, err := a.Theme()
				if err != nil {
					return err
				}
				out, err := renderMarkdown(detailMarkdown(st), mode)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
}

// renderMarkdown renders md for a terminal in the glamour style matching
// the display mode.
func renderMarkdown(md string, mode theme.Mode) (string, error) {
	style := "light"
	if mode.IsDark() {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render detail: %w", err)
	}
	return out, nil
}
