package qket

import (
	"gonum.org/v1/gonum/cmplxs/cscalar"
	"gonum.org/v1/gonum/mat"
)

/*
Gate is a unitary operator on k qubits, stored as a 2^k × 2^k matrix.
Unitarity is checked once, when the gate is built, so applying a gate costs
only the matrix-vector work. Gates are immutable after construction and safe
to share between systems and goroutines.
*/
type Gate struct {
	name   string
	qubits int
	matrix *mat.CDense
}

/*
NewGate builds a gate over qubits qubits from row-major matrix data of
2^qubits × 2^qubits entries. Row r, column c of the matrix maps basis c of
the gate's own index space to basis r; the first target position given to
Apply is the most significant bit of that index.
*/
func NewGate(name string, qubits int, data []complex128) (*Gate, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, &InvalidGateError{Gate: name, Reason: ReasonDimension}
	}

	dim := 1 << qubits
	if len(data) != dim*dim {
		return nil, &InvalidGateError{Gate: name, Reason: ReasonDimension}
	}

	buf := make([]complex128, len(data))
	copy(buf, data)
	m := mat.NewCDense(dim, dim, buf)

	if !isUnitary(m) {
		return nil, &InvalidGateError{Gate: name, Reason: ReasonNotUnitary}
	}

	return &Gate{name: name, qubits: qubits, matrix: m}, nil
}

// mustGate is for catalog gates that are unitary by construction.
func mustGate(name string, qubits int, data []complex128) *Gate {
	g, err := NewGate(name, qubits, data)
	if err != nil {
		panic(err)
	}
	return g
}

// isUnitary checks U·U† = I entry by entry within Epsilon.
func isUnitary(m *mat.CDense) bool {
	dim, _ := m.Dims()
	h := m.H()

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			var sum complex128
			for k := 0; k < dim; k++ {
				sum += m.At(i, k) * h.At(k, j)
			}

			want := complex128(0)
			if i == j {
				want = 1
			}

			if !cscalar.EqualWithinAbs(sum, want, Epsilon) {
				return false
			}
		}
	}

	return true
}

func (g *Gate) Name() string { return g.name }
func (g *Gate) Qubits() int  { return g.qubits }
func (g *Gate) Dim() int     { return 1 << g.qubits }

// At returns matrix entry (r, c).
func (g *Gate) At(r, c int) Complex {
	return Complex(g.matrix.At(r, c))
}

// Matrix returns a row-major copy of the gate matrix.
func (g *Gate) Matrix() []complex128 {
	dim := g.Dim()
	out := make([]complex128, 0, dim*dim)
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			out = append(out, g.matrix.At(r, c))
		}
	}
	return out
}

// Dagger returns the adjoint gate U†, which undoes g.
func (g *Gate) Dagger() *Gate {
	dim := g.Dim()
	h := g.matrix.H()

	data := make([]complex128, 0, dim*dim)
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			data = append(data, h.At(r, c))
		}
	}

	return &Gate{name: g.name + "†", qubits: g.qubits, matrix: mat.NewCDense(dim, dim, data)}
}

/*
Controlled returns C-U: a gate on one more qubit whose first position is the
control. The lower-right block is g, the upper-left block is the identity.
*/
func (g *Gate) Controlled() *Gate {
	dim := g.Dim()
	big := 2 * dim
	data := make([]complex128, big*big)

	for i := 0; i < dim; i++ {
		data[i*big+i] = 1
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			data[(dim+r)*big+dim+c] = g.matrix.At(r, c)
		}
	}

	return &Gate{name: "C" + g.name, qubits: g.qubits + 1, matrix: mat.NewCDense(big, big, data)}
}

/*
Apply transforms sys by g acting on the given qubit positions, with identity
on every other qubit. positions[0] is the most significant bit of the gate's
index space, so CNOT applied to (0, 1) uses qubit 0 as control.

For every basis index whose target bits are all zero, the 2^k amplitudes
that share its non-target bits are gathered into gate order, multiplied by
the matrix, and scattered back to the system's own bit ordering.
*/
func (g *Gate) Apply(sys *System, positions ...int) error {
	n := sys.state.qubits
	if err := validatePositions(positions, n, g.qubits); err != nil {
		return err
	}

	amps := sys.state.amps
	dim := g.Dim()
	mask := positionsMask(n, positions)

	idx := make([]int, dim)
	in := make([]complex128, dim)

	for base := 0; base < len(amps); base++ {
		if base&mask != 0 {
			continue
		}

		for sub := 0; sub < dim; sub++ {
			idx[sub] = scatterBits(base, sub, n, positions)
			in[sub] = amps[idx[sub]]
		}

		for r := 0; r < dim; r++ {
			var acc complex128
			for c := 0; c < dim; c++ {
				if in[c] == 0 {
					continue
				}
				acc += g.matrix.At(r, c) * in[c]
			}
			amps[idx[r]] = acc
		}
	}

	settle(amps, "apply "+g.name)
	return nil
}
