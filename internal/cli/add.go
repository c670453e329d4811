package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/editor"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

func newAddCmd(s *session) *cobra.Command {
	var (
		name        string
		description string
		layers      []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a stack",
		Long: `Add creates a stack from a project name and one or more layers.
Layers are given bottom of the stack first, each as "Provider:Use".

Example:
  stacked add --name App1 --layer "Supabase:Database" --layer "Vercel:Frontend"
  stacked add --name App2 --description "side project" --layer "AWS:Backend" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(a *app.App) error {
				e := a.OpenAdd()
				e.SetProjectName(name)
				e.SetDescription(description)
				if err := fillDrafts(e, parseLayers(layers)); err != nil {
					return err
				}

				st, _, err := a.Submit()
				if err != nil {
					return err
				}
				if s.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), st)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added stack %s (%s)\n", st.ProjectName, st.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "project name (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringArrayVarP(&layers, "layer", "l", nil, `layer as "Provider:Use", bottom first; repeatable`)
	return cmd
}

// parseLayers splits each "Provider:Use" value on its first colon. A value
// without a colon becomes a provider with an empty use, which fails
// validation with the usual message.
func parseLayers(values []string) []types.Layer {
	out := make([]types.Layer, 0, len(values))
	for _, v := range values {
		provider, use, _ := strings.Cut(v, ":")
		out = append(out, types.Layer{Provider: provider, Use: use})
	}
	return out
}

// fillDrafts replaces the editor's drafts with layers.
func fillDrafts(e *editor.Editor, layers []types.Layer) error {
	for _, d := range e.Drafts() {
		e.RemoveDraft(d.ID)
	}
	for _, l := range layers {
		id := e.AddDraft()
		if err := e.SetField(id, editor.FieldProvider, l.Provider); err != nil {
			return err
		}
		if err := e.SetField(id, editor.FieldUse, l.Use); err != nil {
			return err
		}
	}
	return nil
}
