package qket

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

/*
Snapshot is the plain-data form of a State for external tooling to inspect
or serialize. Amplitudes are split into real and imaginary slices because
the wire encoding has no complex type.
*/
type Snapshot struct {
	Qubits int       `msgpack:"qubits"`
	Real   []float64 `msgpack:"real"`
	Imag   []float64 `msgpack:"imag"`
}

// Snapshot copies the state into plain data.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Qubits: s.qubits,
		Real:   make([]float64, len(s.amps)),
		Imag:   make([]float64, len(s.amps)),
	}

	for i, a := range s.amps {
		snap.Real[i] = real(a)
		snap.Imag[i] = imag(a)
	}

	return snap
}

// State rebuilds a validated State from the snapshot.
func (snap Snapshot) State() (*State, error) {
	if len(snap.Real) != len(snap.Imag) {
		return nil, &InvalidStateError{Reason: ReasonLength, Length: len(snap.Real)}
	}

	amps := make([]complex128, len(snap.Real))
	for i := range amps {
		amps[i] = complex(snap.Real[i], snap.Imag[i])
	}

	s, err := newState(amps)
	if err != nil {
		return nil, err
	}

	if snap.Qubits != s.qubits {
		return nil, &InvalidStateError{Reason: ReasonLength, Length: len(amps)}
	}

	return s, nil
}

// EncodeSnapshot serializes a snapshot with msgpack.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	buf, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf, nil
}

// DecodeSnapshot reverses EncodeSnapshot. The result is not validated until State is called.
func DecodeSnapshot(buf []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(buf, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
