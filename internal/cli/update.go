package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
)

func newUpdateCmd(s *session) *cobra.Command {
	var (
		name        string
		description string
		layers      []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a stack",
		Long: `Update changes the given fields of a stack and keeps the rest.
Passing --layer replaces the whole layer list. The id, colours and creation
time never change. Updating an id that does not exist changes nothing.

Example:
  stacked update 0190c1a2-... --name "App One"
  stacked update 0190c1a2-... --layer "Fly:Hosting" --layer "Remix:Frontend"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return s.withApp(func(a *app.App) error {
				found, err := a.OpenEdit(id)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No stack with id %s; nothing changed.\n", id)
					return nil
				}

				e := a.Editor()
				if cmd.Flags().Changed("name") {
					e.SetProjectName(name)
				}
				if cmd.Flags().Changed("description") {
					e.SetDescription(description)
				}
				if cmd.Flags().Changed("layer") {
					if err := fillDrafts(e, parseLayers(layers)); err != nil {
						return err
					}
				}

				st, found, err := a.Submit()
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No stack with id %s; nothing changed.\n", id)
					return nil
				}
				if s.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), st)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated stack %s (%s)\n", st.ProjectName, st.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new project name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringArrayVarP(&layers, "layer", "l", nil, `replacement layer as "Provider:Use", bottom first; repeatable`)
	return cmd
}
