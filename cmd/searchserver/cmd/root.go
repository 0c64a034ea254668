// Package cmd provides the searchserver CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

// rootOptions is shared by every subcommand. cfg is filled in by the
// persistent pre-run hook.
type rootOptions struct {
	configPath string
	cfg        *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "searchserver",
		Short: "In-memory TF-IDF document search",
		Long: `searchserver indexes documents from a YAML file or PostgreSQL, ranks them
by TF-IDF with plus and minus query words, and can keep the index current
from a Kafka stream of document events.

Examples:
  searchserver --config configs/development.yaml search "fluffy cat -collar"
  searchserver search --queries queries.txt --joined
  searchserver match "groomed dog"
  searchserver dedup
  searchserver consume`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			opts.cfg = cfg
			logger.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			cmd.SetContext(logger.WithCommand(cmd.Context(), cmd.Name()))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (defaults plus SP_* environment overrides when empty)")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newMatchCmd(opts))
	cmd.AddCommand(newDedupCmd(opts))
	cmd.AddCommand(newConsumeCmd(opts))
	cmd.AddCommand(newPublishCmd(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
