// Package handlers provides Telnet session handling and command dispatch.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cory-johannsen/dicebot/internal/config"
	"github.com/cory-johannsen/dicebot/internal/frontend/telnet"
	"github.com/cory-johannsen/dicebot/internal/game/command"
	"github.com/cory-johannsen/dicebot/internal/game/dice"
	"github.com/cory-johannsen/dicebot/internal/observability"
)

// Evaluator evaluates one tokenized roll command.
type Evaluator interface {
	Evaluate(tokens []string) (dice.Result, bool, error)
}

// Reply is the outcome of dispatching one input line.
type Reply struct {
	// Text is written to the client; empty means no output.
	Text string
	// Quit ends the session after Text is written.
	Quit bool
}

// RollHandler implements telnet.SessionHandler: it reads prefixed command
// lines, evaluates roll commands, and writes results back.
type RollHandler struct {
	cfg       config.BotConfig
	evaluator Evaluator
	registry  *command.Registry
	splitter  *command.Splitter
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewRollHandler creates a RollHandler.
//
// Precondition: cfg must be valid; evaluator, metrics and logger must be non-nil.
func NewRollHandler(cfg config.BotConfig, evaluator Evaluator, metrics *observability.Metrics, logger *zap.Logger) *RollHandler {
	return &RollHandler{
		cfg:       cfg,
		evaluator: evaluator,
		registry:  command.DefaultRegistry(),
		splitter:  command.NewSplitter(cfg.Prefix, cfg.Delimiters),
		metrics:   metrics,
		logger:    logger,
	}
}

// NewLimiter returns a fresh per-session command limiter.
func (h *RollHandler) NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(h.cfg.RatePerSecond), h.cfg.Burst)
}

// HandleSession runs the command loop for one client.
//
// Postcondition: Returns nil on quit, ctx.Err() on cancellation, or a wrapped I/O error.
func (h *RollHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	sessionID := uuid.NewString()
	logger := h.logger.With(
		zap.String("session_id", sessionID),
		zap.String("remote_addr", conn.RemoteAddr().String()),
	)
	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	logger.Info("session started")
	limiter := h.NewLimiter()

	if err := conn.WriteLines(fmt.Sprintf(welcomeBanner, h.cfg.Prefix, h.cfg.Prefix)); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}

	for {
		if err := conn.WritePrompt(prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				logger.Info("client disconnected")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		reply := h.Dispatch(line, limiter, logger)
		if reply.Text != "" {
			if err := conn.WriteLines(reply.Text); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
		}
		if reply.Quit {
			logger.Info("session quit")
			return nil
		}
	}
}

// Dispatch executes one input line against limiter.
//
// Lines without the command prefix are chat and produce no reply. Every
// prefixed line consumes one limiter token.
func (h *RollHandler) Dispatch(line string, limiter *rate.Limiter, logger *zap.Logger) Reply {
	parsed, ok := h.splitter.Parse(line)
	if !ok {
		return Reply{}
	}

	if !limiter.AllowN(time.Now(), 1) {
		logger.Warn("command rate limited", zap.String("command", parsed.Command))
		h.metrics.ObserveEvaluation(observability.OutcomeLimited, 0)
		return Reply{Text: RenderNotice("Slow down! Too many commands.")}
	}

	cmd, found := h.registry.Resolve(parsed.Command)
	if !found {
		logger.Debug("unknown command", zap.String("command", parsed.Command))
		if s, ok := h.registry.Suggest(parsed.Command); ok {
			return Reply{Text: RenderNotice(fmt.Sprintf("Unknown command %q. Did you mean %s%s?", parsed.Command, h.cfg.Prefix, s))}
		}
		return Reply{Text: RenderNotice(fmt.Sprintf("Unknown command %q.", parsed.Command))}
	}

	switch cmd.Handler {
	case command.HandlerRoll:
		return h.roll(parsed.Args, logger)
	case command.HandlerHelp:
		topic := ""
		if len(parsed.Args) > 0 {
			topic = parsed.Args[0]
		}
		return Reply{Text: h.registry.HelpText(h.cfg.Prefix, topic)}
	case command.HandlerQuit:
		return Reply{Text: "Goodbye.", Quit: true}
	default:
		logger.Error("command has no handler", zap.String("command", cmd.Name), zap.String("handler", cmd.Handler))
		return Reply{}
	}
}

func (h *RollHandler) roll(tokens []string, logger *zap.Logger) Reply {
	res, ok, err := h.evaluator.Evaluate(tokens)
	switch {
	case err != nil:
		logger.Info("roll rejected", zap.Strings("tokens", tokens), zap.Error(err))
		h.metrics.ObserveEvaluation(observability.OutcomeError, 0)
		return Reply{Text: RenderError(err)}
	case !ok:
		h.metrics.ObserveEvaluation(observability.OutcomeEmpty, 0)
		return Reply{}
	default:
		h.metrics.ObserveEvaluation(observability.OutcomeOK, res.Dice)
		return Reply{Text: RenderResult(res)}
	}
}
