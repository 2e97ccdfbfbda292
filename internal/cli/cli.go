// Package cli implements the rbver command-line interface.
//
// # Commands
//
//   - serve: run the HTTP service that lists Ruby releases
//   - list: build the catalog once and print it
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The [CLI]
// owns the logger and hands it to the catalog builder and the HTTP server.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbver/internal/config"
	"github.com/matzehuels/rbver/pkg/buildinfo"
	"github.com/matzehuels/rbver/pkg/cache"
	"github.com/matzehuels/rbver/pkg/catalog"
	"github.com/matzehuels/rbver/pkg/integrations/rubylang"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "rbver",
		Short:        "rbver lists the Ruby releases published on ftp.ruby-lang.org",
		Long:         `rbver reads the ruby-lang.org release bucket, groups the release archives by family and orders them newest first, with "-pN" patch levels sorted after the release they patch.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newBuilder wires the listing client, cache and catalog builder for cfg.
// cfg must already be validated.
func (c *CLI) newBuilder(cfg config.Config) (*catalog.Builder, error) {
	floor, err := cfg.Floor()
	if err != nil {
		return nil, err
	}
	strategy, err := catalog.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	client := rubylang.NewClient(cfg.BaseURL, cfg.RequestTimeout.Duration, cfg.RetryPolicy(), buildinfo.UserAgent())
	store := cache.New[*catalog.Catalog](cfg.CacheTTL.Duration)
	return catalog.NewBuilder(client, store,
		catalog.WithLogger(c.Logger),
		catalog.WithStrategy(strategy),
		catalog.WithFloor(floor),
		catalog.WithRootPrefix(cfg.RootPrefix),
		catalog.WithConcurrency(cfg.Concurrency),
	), nil
}

// loadConfig reads the config file, then applies apply for flag overrides
// and validates the result.
func loadConfig(path string, apply func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if apply != nil {
		apply(&cfg)
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}
