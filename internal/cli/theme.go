package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/theme"
)

func newThemeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show or change the display mode",
		Long: `Theme prints the stored display mode, or sets it. The mode picks the
colours of "stacked show" and the terminal gallery. Light is the default.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(theme.Dark), string(theme.Light), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(a *app.App) error {
				var (
					mode theme.Mode
					err  error
				)
				switch {
				case len(args) == 0:
					mode, err = a.Theme()
				case args[0] == "toggle":
					mode, err = a.ToggleTheme()
				default:
					mode = theme.Parse(args[0])
					err = a.SetTheme(mode)
				}
				if err != nil {
					return err
				}

				if s.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"mode": string(mode)})
				}
				fmt.Fprintln(cmd.OutOrStdout(), mode)
				return nil
			})
		},
	}
}
