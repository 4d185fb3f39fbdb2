// Package cli implements the graphkit command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/buildinfo"
	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/config"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/observability"
	"github.com/matzehuels/graphkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "graphkit"

// keyPrefix scopes cache keys so format changes never read stale entries.
const keyPrefix = appName + ":v1:"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graphkit reads, writes and converts GraphML documents",
		Long:         `graphkit converts attributed graphs between GraphML, JSON, YAML and DOT, validates GraphML files and serves conversions over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := &logHooks{logger: c.Logger}
			observability.SetCodecHooks(hooks)
			observability.SetCacheHooks(hooks)
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphkit/config.toml)")

	// Register all subcommands
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool) (*pipeline.Runner, error) {
	opts := c.cfg.Cache.Options()
	if noCache {
		opts.Backend = cache.BackendNull
	}
	store, err := cache.Open(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, cache.NewScopedKeyer(nil, keyPrefix), c.Logger), nil
}

// ioOptions returns the codec options from the [graphml] config section.
func (c *CLI) ioOptions() graphio.Options {
	return graphio.Options{
		StoreIDs:        c.cfg.GraphML.StoreIDs,
		OrderedVertices: c.cfg.GraphML.OrderedVertices,
	}
}
