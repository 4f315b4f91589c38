package dice_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicebot/internal/game/dice"
)

func TestParseTerm_Valid(t *testing.T) {
	tests := []struct {
		token string
		want  dice.Term
	}{
		{"0", dice.Const(0)},
		{"3", dice.Const(3)},
		{"007", dice.Const(7)},
		{"2d6", dice.Dice(2, 6)},
		{"1d1", dice.Dice(1, 1)},
		{"10d100", dice.Dice(10, 100)},
		{"+5", dice.Const(5)},
		{"+0", dice.Const(0)},
		{"1d+6", dice.Dice(1, 6)},
		{"+1d6", dice.Dice(1, 6)},
		{"+2d+8", dice.Dice(2, 8)},
		{"+", dice.Add},
		{"-", dice.Sub},
		{"*", dice.Mul},
		{" + ", dice.Add},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := dice.ParseTerm(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTerm_Unrecognized(t *testing.T) {
	for _, token := range []string{
		"", "abc", "2d0", "0d6", "1d2d3", "d6", "2d", "-1", "2D6", "1.5", "/", "++",
		"++5", "+-5", "+ 5", "1d++6", "+d6", "1d+", "+0d6",
		"99999999999999999999999",
	} {
		t.Run(token, func(t *testing.T) {
			_, err := dice.ParseTerm(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, dice.ErrUnrecognizedTerm))

			var ute *dice.UnrecognizedTermError
			require.True(t, errors.As(err, &ute))
			assert.Equal(t, token, ute.Token)
		})
	}
}

func TestParseTerm_ErrorMessage(t *testing.T) {
	_, err := dice.ParseTerm("2d0")
	require.Error(t, err)
	assert.Equal(t, `can't parse this term: "2d0"`, err.Error())
}

func TestParseTerm_PlusSignedLiteralIsNotOperator(t *testing.T) {
	got, err := dice.ParseTerm("+5")
	require.NoError(t, err)
	_, isOp := got.(dice.Operator)
	assert.False(t, isOp)

	got, err = dice.ParseTerm("+")
	require.NoError(t, err)
	assert.Equal(t, dice.Add, got)
}

func TestEvaluate_PlusSignedOperand(t *testing.T) {
	res, ok, err := dice.Evaluate([]string{"2", "+", "+5"}, dice.NewSeededSource(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "7 ([2] + [5])", res.String())
}

func TestParseTerms_StopsAtFirstFailure(t *testing.T) {
	_, err := dice.ParseTerms([]string{"2", "d6", "+", "x"})
	var ute *dice.UnrecognizedTermError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "d6", ute.Token)
}

func TestParseTerms_Sequence(t *testing.T) {
	terms, err := dice.ParseTerms([]string{"2d6", "+", "3"})
	require.NoError(t, err)
	assert.Equal(t, []dice.Term{dice.Dice(2, 6), dice.Add, dice.Const(3)}, terms)
}

func TestOperator_Apply(t *testing.T) {
	assert.Equal(t, 9, dice.Add.Apply(6, 3))
	assert.Equal(t, 3, dice.Sub.Apply(6, 3))
	assert.Equal(t, -2, dice.Sub.Apply(1, 3))
	assert.Equal(t, 18, dice.Mul.Apply(6, 3))
	assert.Panics(t, func() { dice.Operator(9).Apply(1, 1) })
}

func TestOperator_String(t *testing.T) {
	assert.Equal(t, "+", dice.Add.String())
	assert.Equal(t, "-", dice.Sub.String())
	assert.Equal(t, "*", dice.Mul.String())
}
