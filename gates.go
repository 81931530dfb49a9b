package qket

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
)

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)
	tPhase   = cmplx.Exp(complex(0, math.Pi/4))
)

// Standard gates. Each is unitary by construction and shared read-only.
var (
	I = mustGate("I", 1, []complex128{
		1, 0,
		0, 1,
	})

	// X flips |0> and |1>.
	X = mustGate("X", 1, []complex128{
		0, 1,
		1, 0,
	})

	Y = mustGate("Y", 1, []complex128{
		0, -1i,
		1i, 0,
	})

	// Z flips the phase of |1>.
	Z = mustGate("Z", 1, []complex128{
		1, 0,
		0, -1,
	})

	// H maps |0> to |+> and |1> to |->.
	H = mustGate("H", 1, []complex128{
		invSqrt2, invSqrt2,
		invSqrt2, -invSqrt2,
	})

	S = mustGate("S", 1, []complex128{
		1, 0,
		0, 1i,
	})

	Sdg = withName(S.Dagger(), "SDG")

	T = mustGate("T", 1, []complex128{
		1, 0,
		0, tPhase,
	})

	Tdg = withName(T.Dagger(), "TDG")

	// SX is the square root of X.
	SX = mustGate("SX", 1, []complex128{
		complex(0.5, 0.5), complex(0.5, -0.5),
		complex(0.5, -0.5), complex(0.5, 0.5),
	})

	// CNOT flips its second position when the first is |1>.
	CNOT = mustGate("CNOT", 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	})
	CX = CNOT

	CZ = mustGate("CZ", 2, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, -1,
	})

	SWAP = mustGate("SWAP", 2, []complex128{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})

	// Toffoli flips its third position when both others are |1>.
	Toffoli = withName(CNOT.Controlled(), "CCX")
	CCX     = Toffoli
)

func withName(g *Gate, name string) *Gate {
	g.name = name
	return g
}

var catalog = map[string]*Gate{
	"I":       I,
	"X":       X,
	"Y":       Y,
	"Z":       Z,
	"H":       H,
	"S":       S,
	"SDG":     Sdg,
	"T":       T,
	"TDG":     Tdg,
	"SX":      SX,
	"CX":      CNOT,
	"CNOT":    CNOT,
	"CZ":      CZ,
	"SWAP":    SWAP,
	"CCX":     Toffoli,
	"TOFFOLI": Toffoli,
}

// Lookup resolves a standard gate by name, ignoring case.
func Lookup(name string) (*Gate, bool) {
	g, ok := catalog[strings.ToUpper(name)]
	return g, ok
}

// Catalog lists the names Lookup accepts, sorted.
func Catalog() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RX rotates about the X axis by theta.
func RX(theta float64) *Gate {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return mustGate(fmt.Sprintf("RX(%g)", theta), 1, []complex128{
		c, js,
		js, c,
	})
}

// RY rotates about the Y axis by theta.
func RY(theta float64) *Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return mustGate(fmt.Sprintf("RY(%g)", theta), 1, []complex128{
		c, -s,
		s, c,
	})
}

// RZ rotates about the Z axis by theta.
func RZ(theta float64) *Gate {
	phase := cmplx.Exp(complex(0, theta/2))
	return mustGate(fmt.Sprintf("RZ(%g)", theta), 1, []complex128{
		cmplx.Conj(phase), 0,
		0, phase,
	})
}

// Phase multiplies the |1> amplitude by e^{iθ}.
func Phase(theta float64) *Gate {
	return mustGate(fmt.Sprintf("P(%g)", theta), 1, []complex128{
		1, 0,
		0, cmplx.Exp(complex(0, theta)),
	})
}
