// Package main provides the dicebot CLI: one-shot rolls and the Telnet dice server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebot/internal/config"
	"github.com/cory-johannsen/dicebot/internal/observability"
)

var (
	configPath string
	seed       int64

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dicebot",
	Short: "Evaluate dice-notation rolls such as 2d6 + 3",
	Long: `dicebot evaluates flat dice sequences: rolls (NdF or integers) joined
by +, - or *, applied strictly left to right.

Run "dicebot roll 2d6 + 3" for a one-shot roll, or "dicebot serve" to accept
"!roll" commands over Telnet.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("seed") {
			cfg.Dice.Source = "seeded"
			cfg.Dice.Seed = seed
		}
		logger, err = observability.NewLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML configuration file (defaults + DICEBOT_* env when empty)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "use a deterministic generator with this seed")

	rootCmd.AddCommand(rollCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
