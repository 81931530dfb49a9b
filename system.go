package qket

import (
	"fmt"
)

/*
System is a register of N qubits held as one joint state of 2^N amplitudes.
Qubit i lives at bit N-1-i of the basis index: qubit 0 is the most
significant bit, and every bit-string this package prints lists qubit 0
first.

Gate application and measurement are the only mutators. A System is not
safe for concurrent use; independent Systems can evolve in parallel because
each owns its state exclusively.
*/
type System struct {
	state *State
}

/*
NewSystem joins single-qubit states into one register by tensor product, in
order: qubits[0] becomes qubit 0.
*/
func NewSystem(qubits ...*State) (*System, error) {
	if len(qubits) == 0 {
		return nil, &DimensionMismatchError{Want: 1, Reason: ReasonCount}
	}

	var joint *State
	for i, q := range qubits {
		if q == nil || q.qubits != 1 {
			return nil, &DimensionMismatchError{
				Positions: []int{i},
				Want:      1,
				Qubits:    len(qubits),
				Reason:    "single-qubit state required",
			}
		}

		if joint == nil {
			joint = q.Clone()
			continue
		}

		joint = Tensor(joint, q)
	}

	return &System{state: joint}, nil
}

// NewZeroSystem returns n qubits all in |0>.
func NewZeroSystem(n int) (*System, error) {
	s, err := BasisState(n, 0)
	if err != nil {
		return nil, err
	}
	return &System{state: s}, nil
}

// FromState adopts a copy of an existing joint state.
func FromState(s *State) *System {
	return &System{state: s.Clone()}
}

func (s *System) Qubits() int { return s.state.qubits }

// Snapshot returns a copy of the current joint state.
func (s *System) Snapshot() *State {
	return s.state.Clone()
}

func (s *System) Clone() *System {
	return FromState(s.state)
}

func (s *System) String() string {
	return s.state.String()
}

// ApplyGate applies g to the given positions of this system.
func (s *System) ApplyGate(g *Gate, positions ...int) error {
	return g.Apply(s, positions...)
}

/*
Measure observes the given positions. It computes the marginal probability of
every assignment, draws once from rng, selects the assignment whose
cumulative interval (ascending integer encoding) holds the draw, and
collapses the state onto it.
*/
func (s *System) Measure(rng Source, positions ...int) (Outcome, error) {
	n := s.state.qubits
	if err := validatePositions(positions, n, 0); err != nil {
		return Outcome{}, err
	}

	probs := marginals(s.state.amps, n, positions)

	value, ok := sample(probs, rng.Float64())
	if !ok {
		return Outcome{}, degenerate(s.state.amps, s.state.Norm2())
	}

	collapse(s.state.amps, n, positions, value)
	if err := s.state.Renormalize(); err != nil {
		return Outcome{}, err
	}

	measured := make([]int, len(positions))
	copy(measured, positions)

	return Outcome{Positions: measured, Value: value, Probability: probs[value]}, nil
}

// MeasureAll measures every qubit; the outcome value is the observed basis index.
func (s *System) MeasureAll(rng Source) (Outcome, error) {
	return s.Measure(rng, s.allPositions()...)
}

// Reset measures a qubit and flips it back to |0> if it came out 1.
func (s *System) Reset(rng Source, position int) error {
	out, err := s.Measure(rng, position)
	if err != nil {
		return err
	}

	if out.Value == 1 {
		return X.Apply(s, position)
	}
	return nil
}

/*
Probabilities returns the marginal distribution over the given positions
without disturbing the state. Index v holds the probability of the
assignment whose bit-string, positions[0] first, encodes v. With no
positions it returns the distribution over the full basis.
*/
func (s *System) Probabilities(positions ...int) ([]float64, error) {
	if len(positions) == 0 {
		positions = s.allPositions()
	}

	if err := validatePositions(positions, s.state.qubits, 0); err != nil {
		return nil, err
	}

	return marginals(s.state.amps, s.state.qubits, positions), nil
}

// Probability returns the marginal probability of one assignment of the given positions.
func (s *System) Probability(value int, positions ...int) (float64, error) {
	probs, err := s.Probabilities(positions...)
	if err != nil {
		return 0, err
	}

	if value < 0 || value >= len(probs) {
		return 0, &DimensionMismatchError{
			Positions: positions,
			Qubits:    s.state.qubits,
			Reason:    fmt.Sprintf("value %d outside %d-outcome space", value, len(probs)),
		}
	}
	return probs[value], nil
}

// QubitProbability is the chance of reading 0 or 1 from one qubit on its own.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the single-qubit marginals of every qubit.
func (s *System) QubitProbabilities() []QubitProbability {
	n := s.state.qubits
	probs := make([]QubitProbability, n)

	for i, a := range s.state.amps {
		p := abs2(a)
		for q := 0; q < n; q++ {
			if i&qubitMask(n, q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}

	return probs
}

// Entropy is the Shannon entropy, in bits, of a full measurement of the system.
func (s *System) Entropy() float64 {
	return entropyBits(s.state.Probabilities())
}

func (s *System) allPositions() []int {
	positions := make([]int, s.state.qubits)
	for i := range positions {
		positions[i] = i
	}
	return positions
}
