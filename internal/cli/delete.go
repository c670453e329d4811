package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
)

func newDeleteCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stack",
		Long: `Delete removes a stack after asking for confirmation. Anything but
"y" or "yes" keeps the stack. Deleting an id that does not exist changes
nothing.

Example:
  stacked delete 0190c1a2-...
  stacked delete 0190c1a2-... --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()
			return s.withApp(func(a *app.App) error {
				_, found, err := a.ShowDetail(id)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(out, "No stack with id %s; nothing changed.\n", id)
					return nil
				}

				confirm := func(name string) bool {
					if yes {
						return true
					}
					return ask(cmd.InOrStdin(), out, app.ConfirmDeletePrompt(name))
				}
				deleted, err := a.DeleteDetail(confirm)
				if err != nil {
					return err
				}

				if s.flags.jsonMode {
					return writeJSON(out, map[string]any{"id": id, "deleted": deleted})
				}
				if deleted {
					fmt.Fprintf(out, "Deleted stack %s\n", id)
				} else {
					fmt.Fprintln(out, "Cancelled.")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// ask prints prompt and reads a y/N answer. End of input counts as no.
func ask(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
