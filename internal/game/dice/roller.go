package dice

// Roll evaluates spec using src.
//
// Postcondition: for a dice spec len(result) == spec.Count and every value is
// in [1, spec.Faces], in draw order; for a constant the result is
// [spec.Value] and src is not consulted.
func Roll(spec RollSpec, src Source) Outcome {
	if !spec.dice {
		return Outcome{spec.Value}
	}
	out := make(Outcome, spec.Count)
	for i := range out {
		out[i] = Between(src, 1, spec.Faces)
	}
	return out
}
