package cli

import (
	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// convertFlags holds flags for the convert command.
type convertFlags struct {
	from     string
	to       string
	storeIDs bool
	ordered  bool
	noCache  bool
	refresh  bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a graph between GraphML, JSON, YAML and DOT",
		Long: `Convert a graph file into another format.

Formats and compression are inferred from the file extensions:
.graphml/.xml, .json, .yaml/.yml and .dot/.gv, optionally followed by
.gz, .zst or .lz4. Use --from and --to to override the inferred format.`,
		Example: `  graphkit convert network.graphml network.json
  graphkit convert network.json.zst network.graphml.gz --store-ids
  graphkit convert network.graphml network.dot`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := c.ioOptions()
			if !cmd.Flags().Changed("store-ids") {
				flags.storeIDs = defaults.StoreIDs
			}
			if !cmd.Flags().Changed("ordered") {
				flags.ordered = defaults.OrderedVertices
			}
			return c.runConvert(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "input format (default: from the extension)")
	cmd.Flags().StringVar(&flags.to, "to", "", "output format (default: from the extension)")
	cmd.Flags().BoolVar(&flags.storeIDs, "store-ids", false, "keep the input's node and edge ids")
	cmd.Flags().BoolVar(&flags.ordered, "ordered", false, "advertise canonical node ids in GraphML output")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, in, out string, flags convertFlags) error {
	prog := newProgress(c.Logger)

	data, from, err := graphio.Load(in)
	if err != nil {
		return err
	}
	if flags.from != "" {
		if from, err = graphio.ParseFormat(flags.from); err != nil {
			return err
		}
	}
	to, err := outputFormat(out, flags.to)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cmd, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Convert(cmd.Context(), data, pipeline.Options{
		From:            from,
		To:              to,
		StoreIDs:        flags.storeIDs,
		OrderedVertices: flags.ordered,
		Refresh:         flags.refresh,
		TTL:             c.cfg.Cache.TTL.Duration,
	})
	if err != nil {
		return err
	}
	if err := graphio.Save(out, res.Output); err != nil {
		return err
	}

	prog.done("Converted " + in)
	printSuccess("Wrote %s", out)
	printStats(res.Stats.Vertices, res.Stats.Edges, res.CacheHit)
	return nil
}

// outputFormat resolves the target format from an explicit name or the
// output path's extension.
func outputFormat(path, explicit string) (graphio.Format, error) {
	if explicit != "" {
		return graphio.ParseFormat(explicit)
	}
	f, _, err := graphio.DetectFormat(path)
	return f, err
}
