package dice

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrUnrecognizedTerm = errors.New("dice: unrecognized term")
	ErrExpectedTerm     = errors.New("dice: expected term")
	ErrExpectedOperator = errors.New("dice: expected operator")
	ErrTooManyDice      = errors.New("dice: too many dice")
)

// UnrecognizedTermError reports a token that is neither an integer, a dice
// spec, nor an operator.
type UnrecognizedTermError struct {
	Token string
}

func (e *UnrecognizedTermError) Error() string {
	return fmt.Sprintf("can't parse this term: %q", e.Token)
}

// Is reports whether target is ErrUnrecognizedTerm.
func (e *UnrecognizedTermError) Is(target error) bool { return target == ErrUnrecognizedTerm }

// ExpectedTermError reports an operator at the start of a sequence or
// directly after another operator.
type ExpectedTermError struct {
	Op Operator
}

func (e *ExpectedTermError) Error() string {
	return fmt.Sprintf("malformed equation: was expecting a term but instead got: %s", e.Op)
}

// Is reports whether target is ErrExpectedTerm.
func (e *ExpectedTermError) Is(target error) bool { return target == ErrExpectedTerm }

// ExpectedOperatorError reports two roll terms with no operator between them.
type ExpectedOperatorError struct {
	Roll RollSpec
}

func (e *ExpectedOperatorError) Error() string {
	return fmt.Sprintf("malformed equation: was expecting an operator but instead got: %s", e.Roll)
}

// Is reports whether target is ErrExpectedOperator.
func (e *ExpectedOperatorError) Is(target error) bool { return target == ErrExpectedOperator }
