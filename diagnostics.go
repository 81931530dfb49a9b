package qket

import (
	"math"

	"github.com/davecgh/go-spew/spew"
	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/stat"
)

func dumpAmplitudes(amps []complex128) string {
	return spew.Sdump(amps)
}

func logDrift(op string, drift float64) {
	errnie.Info("%s - renormalising float drift %.3g", op, drift)
}

/*
degenerate builds a DegenerateStateError and logs it. It is
never an expected runtime condition, so the full amplitude dump goes out
with it.
*/
func degenerate(amps []complex128, mass float64) *DegenerateStateError {
	err := &DegenerateStateError{Mass: mass, Dump: dumpAmplitudes(amps)}
	errnie.Info("degenerate state - mass %.3g, amplitudes %s", mass, err.Dump)
	return err
}

// entropyBits is the Shannon entropy of a probability distribution in bits.
func entropyBits(p []float64) float64 {
	return stat.Entropy(p) / math.Ln2
}
