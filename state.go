package qket

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/cmplxs/cscalar"
)

/*
State is an amplitude vector: 2^N complex amplitudes over the computational
basis of N qubits. The squared magnitudes always sum to one within Epsilon.

A State has two views of the same data. Amplitudes gives the raw components
in basis-index order; Terms gives the decomposition as a sum of scalar
multiples of basis kets. Both read the one backing slice.
*/
type State struct {
	amps   []complex128
	qubits int
}

/*
Term is one scalar multiple of a basis ket in a decomposition. Basis is the
basis index, read as a bit-string with qubit 0 first.
*/
type Term struct {
	Basis     int
	Amplitude Complex
}

// NewState validates amplitudes and copies them into a new State.
func NewState(amps ...Complex) (*State, error) {
	return newState(toNative(amps))
}

func newState(amps []complex128) (*State, error) {
	if err := validateAmplitudes(amps); err != nil {
		return nil, err
	}

	return &State{amps: amps, qubits: qubitsFor(len(amps))}, nil
}

// NewQubit builds a single-qubit state alpha|0> + beta|1>.
func NewQubit(alpha, beta Complex) (*State, error) {
	return NewState(alpha, beta)
}

// KetZero returns |0>.
func KetZero() *State {
	return &State{amps: []complex128{1, 0}, qubits: 1}
}

// KetOne returns |1>.
func KetOne() *State {
	return &State{amps: []complex128{0, 1}, qubits: 1}
}

// KetPlus returns (|0> + |1>)/√2.
func KetPlus() *State {
	h := complex(1/math.Sqrt2, 0)
	return &State{amps: []complex128{h, h}, qubits: 1}
}

// KetMinus returns (|0> - |1>)/√2.
func KetMinus() *State {
	h := complex(1/math.Sqrt2, 0)
	return &State{amps: []complex128{h, -h}, qubits: 1}
}

// BasisState returns the computational basis state |index> over n qubits.
func BasisState(n, index int) (*State, error) {
	if n < 1 || n > MaxQubits {
		return nil, &InvalidStateError{Reason: ReasonLength, Length: 0}
	}

	if index < 0 || index >= 1<<n {
		return nil, &DimensionMismatchError{
			Positions: []int{index},
			Qubits:    n,
			Reason:    fmt.Sprintf("basis index %d outside %d-qubit space", index, n),
		}
	}

	amps := make([]complex128, 1<<n)
	amps[index] = 1
	return &State{amps: amps, qubits: n}, nil
}

/*
Superpose builds a state over n qubits from a sum of scalar multiples of
basis kets. Terms on the same basis index add up. The result is validated
once, after summation, so intermediate sums need not be normalised.
*/
func Superpose(n int, terms ...Term) (*State, error) {
	if n < 1 || n > MaxQubits {
		return nil, &InvalidStateError{Reason: ReasonLength, Length: 0}
	}

	amps := make([]complex128, 1<<n)
	for _, t := range terms {
		if t.Basis < 0 || t.Basis >= len(amps) {
			return nil, &DimensionMismatchError{
				Positions: []int{t.Basis},
				Qubits:    n,
				Reason:    fmt.Sprintf("basis index %d outside %d-qubit space", t.Basis, n),
			}
		}
		amps[t.Basis] += complex128(t.Amplitude)
	}

	return newState(amps)
}

/*
Tensor returns the Kronecker product a⊗b. Entry (i, j) lands at index
i·b.Len()+j, so a's qubits come first (most significant) in the result.
*/
func Tensor(a, b *State) *State {
	out := make([]complex128, len(a.amps)*len(b.amps))
	for i, x := range a.amps {
		row := out[i*len(b.amps) : (i+1)*len(b.amps)]
		cmplxs.ScaleTo(row, x, b.amps)
	}

	settle(out, "tensor")
	return &State{amps: out, qubits: a.qubits + b.qubits}
}

/*
Renormalize rescales the amplitudes to unit norm. It is used after collapse,
where the surviving amplitudes sum to the outcome probability rather than
one.
*/
func (s *State) Renormalize() error {
	n2 := norm2(s.amps)
	if !(n2 >= Epsilon) || math.IsInf(n2, 0) {
		return degenerate(s.amps, n2)
	}

	cmplxs.ScaleReal(1/math.Sqrt(n2), s.amps)
	return nil
}

func (s *State) Qubits() int { return s.qubits }
func (s *State) Len() int    { return len(s.amps) }

// Norm2 returns the sum of squared magnitudes.
func (s *State) Norm2() float64 {
	return norm2(s.amps)
}

// Amplitude returns the amplitude of basis index i.
func (s *State) Amplitude(i int) Complex {
	return Complex(s.amps[i])
}

// Amplitudes returns a copy of the raw components in basis-index order.
func (s *State) Amplitudes() []Complex {
	return fromNative(s.amps)
}

// Terms returns the basis decomposition, skipping amplitudes whose weight is below Epsilon.
func (s *State) Terms() []Term {
	terms := make([]Term, 0, len(s.amps))
	for i, a := range s.amps {
		if abs2(a) < Epsilon {
			continue
		}
		terms = append(terms, Term{Basis: i, Amplitude: Complex(a)})
	}
	return terms
}

// Probabilities returns |a_i|² for every basis index.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = abs2(a)
	}
	return probs
}

func (s *State) Clone() *State {
	amps := make([]complex128, len(s.amps))
	copy(amps, s.amps)
	return &State{amps: amps, qubits: s.qubits}
}

// Equal reports whether both states have the same size and every amplitude agrees within tol.
func (s *State) Equal(other *State, tol float64) bool {
	if s.qubits != other.qubits {
		return false
	}

	return cmplxs.EqualFunc(s.amps, other.amps, func(a, b complex128) bool {
		return cscalar.EqualWithinAbs(a, b, tol)
	})
}

// String renders the state in ket notation, e.g. "(0.7071+0i)|00> + (0.7071+0i)|11>".
func (s *State) String() string {
	var b strings.Builder
	for i, t := range s.Terms() {
		if i > 0 {
			b.WriteString(" + ")
		}
		fmt.Fprintf(&b, "(%.4g%+.4gi)|%s>", t.Amplitude.Real(), t.Amplitude.Imag(), bitString(t.Basis, s.qubits))
	}
	return b.String()
}
