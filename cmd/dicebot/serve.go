package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebot/internal/config"
	"github.com/cory-johannsen/dicebot/internal/frontend/handlers"
	"github.com/cory-johannsen/dicebot/internal/frontend/telnet"
	"github.com/cory-johannsen/dicebot/internal/game/dice"
	"github.com/cory-johannsen/dicebot/internal/observability"
	"github.com/cory-johannsen/dicebot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept !roll commands over Telnet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	start := time.Now()

	logger.Info("starting dicebot",
		zap.String("dice_source", cfg.Dice.Source),
		zap.Int("max_dice", cfg.Dice.MaxDice),
		zap.String("prefix", cfg.Bot.Prefix),
	)

	ev, err := newEvaluator(cfg.Dice, logger)
	if err != nil {
		return err
	}
	metrics := observability.NewMetrics()
	handler := handlers.NewRollHandler(cfg.Bot, ev, metrics, logger)
	acceptor := telnet.NewAcceptor(cfg.Telnet, handler, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("telnet", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})
	if cfg.Metrics.Enabled {
		lifecycle.Add("metrics", server.NewHTTPService(cfg.Metrics.Addr(), metrics.Handler(), logger))
	}

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)

	if err := lifecycle.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// newEvaluator builds the configured randomness source and evaluator.
func newEvaluator(dc config.DiceConfig, logger *zap.Logger) (*dice.Evaluator, error) {
	var src dice.Source
	switch dc.Source {
	case "crypto":
		src = dice.NewCryptoSource()
	case "seeded":
		src = dice.NewSeededSource(dc.Seed)
	default:
		return nil, fmt.Errorf("unknown dice source %q", dc.Source)
	}
	return dice.NewEvaluator(src, logger.Named("dice"), dice.WithMaxDice(dc.MaxDice)), nil
}
