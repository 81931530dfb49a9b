package qket

import (
	"math"
	"math/bits"

	"gonum.org/v1/gonum/cmplxs"
)

const (
	// Epsilon bounds how far the squared norm of a state may sit from one,
	// and how far U·U† may sit from the identity for a gate.
	Epsilon = 1e-9

	// DriftTolerance bounds floating-point norm drift after a transformation.
	// Drift up to this bound is renormalised away; anything beyond it means
	// a gate or product was built wrong.
	DriftTolerance = 1e-6

	// MaxQubits bounds registers and gates to what a dense vector can hold.
	MaxQubits = 30
)

// isPowerOfTwo reports whether n is 2^k for some k >= 1.
func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// qubitsFor returns log2(n) for a power of two.
func qubitsFor(n int) int {
	return bits.TrailingZeros(uint(n))
}

// norm2 is the sum of squared magnitudes.
func norm2(amps []complex128) float64 {
	n := cmplxs.Norm(amps, 2)
	return n * n
}

// withinEpsilon is false for NaN and Inf, so non-finite norms never pass.
func withinEpsilon(n2 float64) bool {
	return math.Abs(n2-1) <= Epsilon
}

func isNormalized(amps []complex128) bool {
	return withinEpsilon(norm2(amps))
}

func validateAmplitudes(amps []complex128) error {
	if !isPowerOfTwo(len(amps)) {
		return &InvalidStateError{Reason: ReasonLength, Length: len(amps)}
	}

	if n2 := norm2(amps); !withinEpsilon(n2) {
		return &InvalidStateError{Reason: ReasonNotNormalized, Length: len(amps), Norm2: n2}
	}

	return nil
}

/*
validatePositions checks caller-supplied qubit positions against a system of
qubits qubits. want is the exact count required, or 0 when any non-empty
selection is acceptable.
*/
func validatePositions(positions []int, qubits, want int) error {
	if (want > 0 && len(positions) != want) || len(positions) == 0 {
		return &DimensionMismatchError{Positions: positions, Want: want, Qubits: qubits, Reason: ReasonCount}
	}

	seen := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if p < 0 || p >= qubits {
			return &DimensionMismatchError{Positions: positions, Want: want, Qubits: qubits, Reason: ReasonOutOfRange}
		}
		if _, dup := seen[p]; dup {
			return &DimensionMismatchError{Positions: positions, Want: want, Qubits: qubits, Reason: ReasonDuplicate}
		}
		seen[p] = struct{}{}
	}

	return nil
}

/*
settle enforces the normalization invariant after a transformation that is
norm-preserving in exact arithmetic. Drift within DriftTolerance is scaled
away; a larger breach is a construction defect and panics.
*/
func settle(amps []complex128, op string) {
	n2 := norm2(amps)
	drift := math.Abs(n2 - 1)

	if withinEpsilon(n2) {
		return
	}

	if !(drift <= DriftTolerance) {
		panic(op + ": norm not preserved: " + dumpAmplitudes(amps))
	}

	logDrift(op, drift)
	cmplxs.ScaleReal(1/math.Sqrt(n2), amps)
}
