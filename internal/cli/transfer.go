package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stacked/internal/app"
	"github.com/mesh-intelligence/stacked/internal/stacks"
)

func newExportCmd(s *session) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all stacks as JSON",
		Long: `Export writes every stored stack as a JSON array, the same shape the
browser build keeps in localStorage.

Example:
  stacked export > stacks.json
  stacked export --out stacks.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(func(a *app.App) error {
				data, err := a.Repository().Export()
				if err != nil {
					return err
				}
				data = append(data, '\n')
				if outPath == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(outPath, data, 0o644); err != nil {
					return sysError(fmt.Errorf("write export: %w", err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func newImportCmd(s *session) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import stacks from a JSON file",
		Long: `Import reads a JSON array of stacks, such as an export or a copy of the
browser build's "stacked_apps" localStorage value. Every record must be
valid or nothing is imported. Stacks whose id is already stored are skipped
unless --replace discards the stored list first. Use "-" to read stdin.

Example:
  stacked import stacks.json
  stacked import - --replace < stacks.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			mode := stacks.ImportAppend
			if replace {
				mode = stacks.ImportReplace
			}

			return s.withApp(func(a *app.App) error {
				res, err := a.Repository().Import(data, mode)
				if err != nil {
					return err
				}
				if s.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"added": res.Added, "skipped": res.Skipped})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stack(s), skipped %d\n", res.Added, res.Skipped)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the stored stacks instead of appending")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, sysError(fmt.Errorf("read stdin: %w", err))
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
