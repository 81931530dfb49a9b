package qket

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrInvalidState      = errors.New("qket: invalid state")
	ErrInvalidGate       = errors.New("qket: invalid gate")
	ErrDimensionMismatch = errors.New("qket: dimension mismatch")
	ErrDegenerateState   = errors.New("qket: degenerate state")
)

// Reasons carried by InvalidStateError, InvalidGateError and DimensionMismatchError.
const (
	ReasonLength        = "length"
	ReasonNotNormalized = "not-normalized"
	ReasonNotUnitary    = "not-unitary"
	ReasonDimension     = "dimension"
	ReasonOutOfRange    = "out-of-range"
	ReasonDuplicate     = "duplicate"
	ReasonCount         = "count"
)

/*
InvalidStateError is returned when amplitude data cannot be a quantum state:
its length is not a power of two (at least 2), or its squared magnitudes do
not sum to one within Epsilon.
*/
type InvalidStateError struct {
	Reason string
	Length int
	Norm2  float64
}

func (e *InvalidStateError) Error() string {
	switch e.Reason {
	case ReasonLength:
		return fmt.Sprintf("qket: invalid state: length %d is not a power of two >= 2", e.Length)
	case ReasonNotNormalized:
		return fmt.Sprintf("qket: invalid state: squared magnitudes sum to %.12g, want 1", e.Norm2)
	}
	return "qket: invalid state: " + e.Reason
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// InvalidGateError is returned when a gate matrix has the wrong shape or is not unitary.
type InvalidGateError struct {
	Gate   string
	Reason string
}

func (e *InvalidGateError) Error() string {
	return fmt.Sprintf("qket: invalid gate %q: %s", e.Gate, e.Reason)
}

func (e *InvalidGateError) Is(target error) bool { return target == ErrInvalidGate }

/*
DimensionMismatchError reports caller-supplied qubit positions that do not
fit the system or gate they were given to: out of range, duplicated, or the
wrong number of them.
*/
type DimensionMismatchError struct {
	Positions []int
	Want      int
	Qubits    int
	Reason    string
}

func (e *DimensionMismatchError) Error() string {
	switch e.Reason {
	case ReasonCount:
		return fmt.Sprintf("qket: dimension mismatch: got %d positions %v, want %d", len(e.Positions), e.Positions, e.Want)
	case ReasonOutOfRange:
		return fmt.Sprintf("qket: dimension mismatch: positions %v out of range for %d qubits", e.Positions, e.Qubits)
	case ReasonDuplicate:
		return fmt.Sprintf("qket: dimension mismatch: positions %v are not distinct", e.Positions)
	}
	return fmt.Sprintf("qket: dimension mismatch: %s (positions %v, %d qubits)", e.Reason, e.Positions, e.Qubits)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

/*
DegenerateStateError means a renormalization or measurement met a vector with
effectively no probability mass. It can only happen after an invariant was
broken upstream, so it is logged loudly and carries a dump of the amplitudes.
*/
type DegenerateStateError struct {
	Mass float64
	Dump string
}

func (e *DegenerateStateError) Error() string {
	return fmt.Sprintf("qket: degenerate state: probability mass %.3g below tolerance %g", e.Mass, Epsilon)
}

func (e *DegenerateStateError) Is(target error) bool { return target == ErrDegenerateState }
