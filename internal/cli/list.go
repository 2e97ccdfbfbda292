package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rbver/internal/config"
	"github.com/matzehuels/rbver/pkg/catalog"
	rberrors "github.com/matzehuels/rbver/pkg/errors"
)

func (c *CLI) listCommand() *cobra.Command {
	var (
		configPath string
		asJSON     bool
		strategy   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the Ruby release list",
		Long: `Build the catalog once and print it, newest family first.

Examples:
  rbver list
  rbver list --json
  rbver list --strategy flat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, func(cfg *config.Config) {
				if cmd.Flags().Changed("strategy") {
					cfg.Strategy = strategy
				}
			})
			if err != nil {
				return err
			}

			builder, err := c.newBuilder(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				cat, err := builder.Build(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat)
			}

			prog := newProgress(c.Logger)
			spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Listing "+cfg.BaseURL+"/"+cfg.RootPrefix)
			spin.Start()
			cat, err := builder.Build(cmd.Context())
			if err != nil {
				spin.StopWithError(rberrors.UserMessage(err))
				return err
			}
			spin.Stop()
			prog.done(fmt.Sprintf("Listed %d families", cat.Len()))

			printCatalog(out, cat)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.Flags().StringVar(&strategy, "strategy", string(catalog.StrategyFamily), "discovery strategy: family or flat")
	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	total := 0
	for _, f := range cat.Families {
		printFamily(w, f)
		total += len(f.Versions)
	}
	printNewline(w)
	printSuccess(w, "%d families, %d versions", cat.Len(), total)
}
