package dice

import (
	"fmt"
	"strings"
)

// State is the accumulator between two terms: a running total and at most
// one operator waiting for its right operand.
//
// Invariant: a pending operator implies a total.
type State struct {
	total      int
	hasTotal   bool
	pending    Operator
	hasPending bool
}

// Total returns the running total, if one has been established.
func (s State) Total() (int, bool) { return s.total, s.hasTotal }

// Pending returns the operator awaiting a right operand, if any.
func (s State) Pending() (Operator, bool) { return s.pending, s.hasPending }

// Step applies one term to s and returns the new state with the term's trace
// line. s itself is never modified.
//
// An operator is legal only after a total and with nothing pending; a roll
// term is legal first or directly after an operator. The roll is drawn before
// legality is checked.
func Step(s State, term Term, src Source) (State, string, error) {
	switch t := term.(type) {
	case Operator:
		if s.hasPending || !s.hasTotal {
			return s, "", &ExpectedTermError{Op: t}
		}
		s.pending, s.hasPending = t, true
		return s, t.String(), nil
	case RollSpec:
		out := Roll(t, src)
		sum := out.Sum()
		switch {
		case s.hasPending:
			s.total = s.pending.Apply(s.total, sum)
			s.pending, s.hasPending = 0, false
		case s.hasTotal:
			return s, "", &ExpectedOperatorError{Roll: t}
		default:
			s.total, s.hasTotal = sum, true
		}
		return s, out.String(), nil
	default:
		panic(fmt.Sprintf("dice: unknown term type %T", term))
	}
}

// Result is a completed evaluation.
type Result struct {
	// Total is the final running total.
	Total int
	// Steps holds one trace line per term, in input order.
	Steps []string
	// Dice is the number of individual dice drawn.
	Dice int
}

// String renders the result as "<total> (<steps>)".
func (r Result) String() string {
	return Format(r.Total, r.Steps)
}

// Format renders a total and its trace as "<total> (<steps joined by spaces>)".
func Format(total int, steps []string) string {
	return fmt.Sprintf("%d (%s)", total, strings.Join(steps, " "))
}

// Fold runs terms through Step from the empty state. When src is an
// ExclusiveSource every draw of the fold comes from one reserved run.
//
// Postcondition: ok is false only when no total was ever established (empty
// input); the caller produces no output in that case. A trailing operator is
// dropped and the total before it stands. The first error aborts the fold
// with no partial result.
func Fold(terms []Term, src Source) (Result, bool, error) {
	var (
		s     State
		steps = make([]string, 0, len(terms))
		drawn int
		err   error
	)
	WithExclusive(src, func(draw Source) {
		for _, term := range terms {
			next, line, stepErr := Step(s, term, draw)
			if stepErr != nil {
				err = stepErr
				return
			}
			if r, isRoll := term.(RollSpec); isRoll && r.dice {
				drawn += r.Count
			}
			s = next
			steps = append(steps, line)
		}
	})
	if err != nil {
		return Result{}, false, err
	}
	total, ok := s.Total()
	if !ok {
		return Result{}, false, nil
	}
	return Result{Total: total, Steps: steps, Dice: drawn}, true, nil
}

// Evaluate parses tokens and folds them.
//
// Postcondition: see Fold; a parse failure is returned before any
// randomness is drawn.
func Evaluate(tokens []string, src Source) (Result, bool, error) {
	terms, err := ParseTerms(tokens)
	if err != nil {
		return Result{}, false, err
	}
	return Fold(terms, src)
}
