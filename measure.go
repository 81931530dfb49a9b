package qket

// Source supplies uniform draws in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

/*
Outcome records a measurement: which positions were measured, the observed
value (its bit-string lists positions[0] first), and the probability the
engine computed for that value when it sampled.
*/
type Outcome struct {
	Positions   []int
	Value       int
	Probability float64
}

// Bits renders Value as a bit-string, positions[0] first.
func (o Outcome) Bits() string {
	return bitString(o.Value, len(o.Positions))
}

// Bit returns the classical bit observed at the i-th measured position.
func (o Outcome) Bit(i int) int {
	return (o.Value >> (len(o.Positions) - 1 - i)) & 1
}

/*
marginals returns, for every assignment of the selected positions (indexed by
its integer encoding), the probability mass of all basis states consistent
with it.
*/
func marginals(amps []complex128, n int, positions []int) []float64 {
	probs := make([]float64, 1<<len(positions))
	for i, a := range amps {
		probs[gatherBits(i, n, positions)] += abs2(a)
	}
	return probs
}

/*
sample picks the outcome whose cumulative interval contains u, walking the
outcomes in ascending order. Outcomes below Epsilon are never selected, so a
collapse can always be renormalised. The draw is scaled onto the eligible
mass, which only differs from one by float drift. ok is false when no outcome
is eligible.
*/
func sample(probs []float64, u float64) (value int, ok bool) {
	total := 0.0
	for _, p := range probs {
		if p >= Epsilon {
			total += p
		}
	}

	if total < Epsilon {
		return 0, false
	}

	target := u * total
	cumulative := 0.0
	last := -1

	for v, p := range probs {
		if p < Epsilon {
			continue
		}

		cumulative += p
		last = v

		if target < cumulative {
			return v, true
		}
	}

	return last, true
}

// collapse zeroes every amplitude inconsistent with value on the selected positions.
func collapse(amps []complex128, n int, positions []int, value int) {
	for i := range amps {
		if gatherBits(i, n, positions) != value {
			amps[i] = 0
		}
	}
}
