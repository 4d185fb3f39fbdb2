package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:               "info FILE",
		Short:             "Summarize a graph file",
		Long:              `Print the directedness, size, id scheme and attribute keys of a graph file.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, f, err := graphio.Load(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sum, cached, err := runner.Info(cmd.Context(), data, f)
			if err != nil {
				return err
			}
			c.Logger.Debug("summary ready", "file", args[0], "cached", cached)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			printSummary(cmd.OutOrStdout(), args[0], sum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// printSummary renders sum as a key/value block followed by a table of
// attribute keys.
func printSummary(w io.Writer, name string, sum *pipeline.Summary) {
	kind := "undirected"
	if sum.Directed {
		kind = "directed"
	}
	fmt.Fprintln(w, StyleTitle.Render(name))
	fmt.Fprintln(w, keyValue("format", sum.Format))
	fmt.Fprintln(w, keyValue("kind", kind))
	fmt.Fprintln(w, keyValue("vertices", StyleNumber.Render(strconv.Itoa(sum.Vertices))))
	fmt.Fprintln(w, keyValue("edges", StyleNumber.Render(strconv.Itoa(sum.Edges))))
	fmt.Fprintln(w, keyValue("self loops", strconv.Itoa(sum.SelfLoops)))
	fmt.Fprintln(w, keyValue("isolated", strconv.Itoa(sum.Isolated)))
	if sum.NodeIDs != "" {
		fmt.Fprintln(w, keyValue("node ids", sum.NodeIDs))
	}
	if sum.EdgeIDs != "" {
		fmt.Fprintln(w, keyValue("edge ids", sum.EdgeIDs))
	}
	if len(sum.Properties) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("FOR", "NAME", "TYPE", "SET").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			if col == 3 {
				return styleTableCell.Align(lipgloss.Right)
			}
			return styleTableCell
		})
	for _, p := range sum.Properties {
		t.Row(p.Domain, p.Name, p.Type, strconv.Itoa(p.Count))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Render())
}
