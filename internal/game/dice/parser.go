package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is one parsed token: exactly a RollSpec or an Operator.
// The set of implementations is closed to this package.
type Term interface {
	isTerm()
}

func (RollSpec) isTerm() {}
func (Operator) isTerm() {}

// Operator is a binary operator joining two roll terms.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
)

// Apply returns left <op> right.
func (o Operator) Apply(left, right int) int {
	switch o {
	case Add:
		return left + right
	case Sub:
		return left - right
	case Mul:
		return left * right
	default:
		panic(fmt.Sprintf("dice: unknown operator %d", int(o)))
	}
}

// String returns the operator's display symbol.
func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	default:
		return "?"
	}
}

// ParseOperator recognizes "+", "-" and "*", ignoring surrounding whitespace.
func ParseOperator(token string) (Operator, bool) {
	switch strings.TrimSpace(token) {
	case "+":
		return Add, true
	case "-":
		return Sub, true
	case "*":
		return Mul, true
	}
	return 0, false
}

// ParseTerm classifies a single token.
//
// Resolution order: integer constant, then "<count>d<faces>" with both
// halves positive, then operator. Integers, including either dice half, may
// carry one leading '+', so "+5" is Const(5) and "1d+6" is Dice(1, 6).
// Anything else, including malformed dice such as "2d0" or "1d2d3", is an
// *UnrecognizedTermError.
func ParseTerm(token string) (Term, error) {
	if v, ok := parseLiteral(token); ok {
		return Const(v), nil
	}
	if spec, ok := parseDice(token); ok {
		return spec, nil
	}
	if op, ok := ParseOperator(token); ok {
		return op, nil
	}
	return nil, &UnrecognizedTermError{Token: token}
}

// ParseTerms parses every token in order, stopping at the first failure.
//
// Postcondition: len(result) == len(tokens) when err is nil.
func ParseTerms(tokens []string) ([]Term, error) {
	terms := make([]Term, 0, len(tokens))
	for _, tok := range tokens {
		term, err := ParseTerm(tok)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// parseLiteral accepts unsigned decimal digits that fit in an int, with at
// most one leading '+'. A bare "+" is not a literal.
func parseLiteral(s string) (int, bool) {
	if len(s) > 1 && s[0] == '+' {
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func parseDice(s string) (RollSpec, bool) {
	parts := strings.Split(s, "d")
	if len(parts) != 2 {
		return RollSpec{}, false
	}
	count, ok := parseLiteral(parts[0])
	if !ok || count == 0 {
		return RollSpec{}, false
	}
	faces, ok := parseLiteral(parts[1])
	if !ok || faces == 0 {
		return RollSpec{}, false
	}
	return Dice(count, faces), true
}
