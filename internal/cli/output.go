package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/stacked/internal/gallery"
	"github.com/mesh-intelligence/stacked/pkg/types"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	return nil
}

// printGallery prints the rendered gallery as a table.
func printGallery(w io.Writer, res gallery.Result) {
	if res.Empty() {
		fmt.Fprintln(w, "No stacks found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLAYERS\tTOP\tCREATED")
	fmt.Fprintln(tw, "--\t----\t------\t---\t-------")
	for _, it := range res.Items {
		name := it.Stack.ProjectName
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		top := ""
		if len(it.Visible) > 0 {
			top = it.Visible[0].Provider
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			it.Stack.ID,
			name,
			it.Stack.LayerCount(),
			top,
			it.Stack.CreatedAt.Local().Format("2006-01-02"),
		)
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d stack(s)\n", len(res.Items))
}

// detailMarkdown renders one stack as markdown: title, description,
// layer count and the layers top of the stack first.
func detailMarkdown(s types.Stack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.ProjectName)
	fmt.Fprintf(&b, "%s\n\n", gallery.DescriptionText(s))
	fmt.Fprintf(&b, "**%s** · created %s", gallery.LayerCountLabel(s.LayerCount()), s.CreatedAt.Local().Format("2006-01-02 15:04"))
	if s.UpdatedAt != nil {
		fmt.Fprintf(&b, " · updated %s", s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	b.WriteString("\n\n")

	b.WriteString("| # | Provider | Use |\n|---|---|---|\n")
	layers := gallery.Detail(s)
	for i, l := range layers {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", len(layers)-i, escapeCell(l.Provider), escapeCell(l.Use))
	}
	fmt.Fprintf(&b, "\n`%s`\n", s.ID)
	return b.String()
}

func escapeCell(v string) string {
	return strings.ReplaceAll(v, "|", `\|`)
}
