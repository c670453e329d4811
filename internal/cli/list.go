package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/gallery"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

func newListCmd(s *session) *cobra.Command {
	var search, sort string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stacks",
		Long: `List shows the gallery: every stack whose project name or any layer
provider contains the search term, in the chosen order.

Example:
  stacked list
  stacked list --search vercel
  stacked list --sort layers-desc --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(a *app.App) error {
				a.SetSearch(search)
				a.SetSort(gallery.SortOrder(sort))
				res, err := a.Gallery()
				if err != nil {
					return err
				}

				if s.flags.jsonMode {
					out := make([]types.Stack, 0, len(res.Items))
					for _, it := range res.Items {
						out = append(out, it.Stack)
					}
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printGallery(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by project name or layer provider (case-insensitive)")
	cmd.Flags().StringVar(&sort, "sort", string(gallery.SortNewest), "order: newest, oldest, layers-desc, layers-asc")
	return cmd
}
