// Package dice evaluates flat dice-notation sequences such as "2d6 + 3".
//
// A sequence is a list of already-split tokens alternating between roll terms
// (dice specs or integer constants) and operators. Terms are folded strictly
// left to right with no precedence; the result carries the final total and a
// per-step trace of the rolled values.
package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// ExclusiveSource is implemented by sources that can reserve a run of draws
// for one caller, so that run cannot interleave with concurrent draws.
type ExclusiveSource interface {
	Source
	// Exclusive calls fn with a Source valid only for the duration of fn.
	Exclusive(fn func(Source))
}

// WithExclusive calls fn with src reserved when src is an ExclusiveSource,
// or with src as-is otherwise.
func WithExclusive(src Source, fn func(Source)) {
	if ex, ok := src.(ExclusiveSource); ok {
		ex.Exclusive(fn)
		return
	}
	fn(src)
}

// Between returns a uniform random int in the closed range [lo, hi].
//
// Precondition: lo <= hi.
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// RollSpec is an un-evaluated roll term: either Count dice of Faces sides,
// or a constant Value.
//
// Invariant: for dice specs Count >= 1 and Faces >= 1; for constants Value >= 0.
type RollSpec struct {
	Count int
	Faces int
	Value int
	dice  bool
}

// Dice returns a RollSpec for count dice with faces sides each.
//
// Precondition: count >= 1 and faces >= 1.
func Dice(count, faces int) RollSpec {
	if count < 1 || faces < 1 {
		panic(fmt.Sprintf("dice: Dice(%d, %d) requires positive count and faces", count, faces))
	}
	return RollSpec{Count: count, Faces: faces, dice: true}
}

// Const returns a RollSpec for the constant value v.
//
// Precondition: v >= 0.
func Const(v int) RollSpec {
	if v < 0 {
		panic(fmt.Sprintf("dice: Const(%d) requires a non-negative value", v))
	}
	return RollSpec{Value: v}
}

// IsDice reports whether r rolls dice rather than yielding a constant.
func (r RollSpec) IsDice() bool { return r.dice }

// String renders r as it would be typed: "2d6" or "3".
func (r RollSpec) String() string {
	if r.dice {
		return fmt.Sprintf("%dd%d", r.Count, r.Faces)
	}
	return strconv.Itoa(r.Value)
}

// Outcome is the ordered list of values produced by evaluating one RollSpec.
type Outcome []int

// Sum returns the sum of all values in o.
func (o Outcome) Sum() int {
	total := 0
	for _, v := range o {
		total += v
	}
	return total
}

// String renders o as "[a, b, c]".
func (o Outcome) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
