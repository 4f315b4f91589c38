package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Evaluator wraps Evaluate with a fixed Source, a dice ceiling, and debug
// logging of every evaluation.
type Evaluator struct {
	src     Source
	logger  *zap.Logger
	maxDice int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxDice rejects any single dice term rolling more than n dice.
// n <= 0 disables the ceiling.
func WithMaxDice(n int) Option {
	return func(e *Evaluator) { e.maxDice = n }
}

// NewEvaluator creates an Evaluator drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewEvaluator(src Source, logger *zap.Logger, opts ...Option) *Evaluator {
	e := &Evaluator{src: src, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate parses and folds tokens.
//
// Postcondition: identical to the package-level Evaluate, except that a dice
// term over the ceiling fails with ErrTooManyDice before anything is rolled.
func (e *Evaluator) Evaluate(tokens []string) (Result, bool, error) {
	terms, err := ParseTerms(tokens)
	if err != nil {
		e.logger.Debug("dice parse failed", zap.Strings("tokens", tokens), zap.Error(err))
		return Result{}, false, err
	}
	if err := e.checkCeiling(terms); err != nil {
		e.logger.Debug("dice ceiling exceeded", zap.Strings("tokens", tokens), zap.Error(err))
		return Result{}, false, err
	}

	res, ok, err := Fold(terms, e.src)
	if err != nil {
		e.logger.Debug("dice sequence rejected", zap.Strings("tokens", tokens), zap.Error(err))
		return Result{}, false, err
	}
	if !ok {
		e.logger.Debug("dice sequence empty", zap.Strings("tokens", tokens))
		return Result{}, false, nil
	}
	e.logger.Debug("dice roll",
		zap.Strings("tokens", tokens),
		zap.Strings("steps", res.Steps),
		zap.Int("dice", res.Dice),
		zap.Int("total", res.Total),
	)
	return res, true, nil
}

func (e *Evaluator) checkCeiling(terms []Term) error {
	if e.maxDice <= 0 {
		return nil
	}
	for _, term := range terms {
		if r, ok := term.(RollSpec); ok && r.dice && r.Count > e.maxDice {
			return fmt.Errorf("%w: %s rolls more than %d dice", ErrTooManyDice, r, e.maxDice)
		}
	}
	return nil
}
