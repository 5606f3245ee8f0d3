package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/graph"
	"github.com/matzehuels/archview/pkg/pipeline"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a diagram document without rendering it",
		Long: `Decode a diagram document, check ids and references and compose every
element and relation. Prints the composed sizes and any content that would
render as a fallback. Layout is not run.`,
		Args: sourceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), cmd.OutOrStdout(), args[0], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report problems")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, w io.Writer, input string, quiet bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := diagram.ReadFile(input)
	if err != nil {
		return err
	}

	opts := renderOptions(cfg, "", "")
	if opts.Themes, err = cfg.Themes(); err != nil {
		return err
	}
	g, err := pipeline.Assemble(ctx, doc, opts)
	if err != nil {
		printError(w, "%s is invalid", input)
		return err
	}

	warnings := doc.Lint()
	if !quiet {
		fmt.Fprintln(w, StyleTitle.Render("Elements"))
		fmt.Fprintln(w, elementTable(g))
		if len(doc.Relations) > 0 {
			fmt.Fprintln(w, StyleTitle.Render("Relations"))
			fmt.Fprintln(w, relationTable(doc, g))
		}
	}
	for _, msg := range warnings {
		printWarning(w, "%s", msg)
	}
	printSuccess(w, "%s is valid", input)
	printDetail(w, "%d elements · %d relations · %d groups · %d warnings",
		len(doc.Elements), len(doc.Relations), len(g.Clusters()), len(warnings))
	return nil
}

// elementTable lists the composed elements in document order.
func elementTable(g *graph.Graph) string {
	rows := make([][]string, 0, g.NodeCount())
	for _, n := range g.Elements() {
		rows = append(rows, []string{
			n.ID,
			orDash(n.Type),
			string(n.Mode),
			fmt.Sprintf("%.0f×%.0f", n.Width, n.Height),
			orDash(n.Parent),
		})
	}
	return newTable("ID", "Type", "Content", "Size", "Group").Rows(rows...).Render()
}

// relationTable lists relations with their label mode and reserved label box.
func relationTable(doc *diagram.Document, g *graph.Graph) string {
	edges := g.Edges()
	rows := make([][]string, 0, len(doc.Relations))
	for i := range doc.Relations {
		r := &doc.Relations[i]
		label := "—"
		if mode := r.LabelMode(); mode != diagram.LabelNone {
			label = string(mode)
			if i < len(edges) && edges[i].HasLabel {
				label += fmt.Sprintf(" %.0f×%.0f", edges[i].LabelWidth, edges[i].LabelHeight)
			}
		}
		rows = append(rows, []string{r.From + " " + iconArrow + " " + r.To, label, orDash(r.Style)})
	}
	return newTable("Relation", "Label", "Style").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
