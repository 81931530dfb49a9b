package qket

import (
	"math"

	"gonum.org/v1/gonum/cmplxs/cscalar"
)

/*
Complex is a single amplitude: an immutable pair of real components.
It is a named complex128 so it converts freely to and from the native
type, while still carrying the arithmetic the rest of the package speaks.
*/
type Complex complex128

// Real and imaginary unit values, handy when writing states by hand.
const (
	ComplexZero Complex = 0
	ComplexOne  Complex = 1
	ComplexI    Complex = 1i
)

// NewComplex builds an amplitude from its real and imaginary parts.
func NewComplex(re, im float64) Complex {
	return Complex(complex(re, im))
}

func (z Complex) Real() float64 { return real(z) }
func (z Complex) Imag() float64 { return imag(z) }

func (z Complex) Add(w Complex) Complex { return z + w }
func (z Complex) Sub(w Complex) Complex { return z - w }
func (z Complex) Mul(w Complex) Complex { return z * w }

// Scale multiplies both components by a real factor.
func (z Complex) Scale(f float64) Complex {
	return NewComplex(real(z)*f, imag(z)*f)
}

// Conj returns the complex conjugate.
func (z Complex) Conj() Complex {
	return NewComplex(real(z), -imag(z))
}

/*
Abs2 returns the squared magnitude re² + im², which is the probability
weight of an amplitude. Valid amplitudes live in the unit disc, so the
plain sum of squares cannot overflow.
*/
func (z Complex) Abs2() float64 {
	return abs2(complex128(z))
}

// Abs returns the magnitude.
func (z Complex) Abs() float64 {
	return math.Sqrt(z.Abs2())
}

// Equal reports componentwise equality within an absolute tolerance.
func (z Complex) Equal(w Complex, tol float64) bool {
	return cscalar.EqualWithinAbs(complex128(z), complex128(w), tol)
}

func abs2(z complex128) float64 {
	re, im := real(z), imag(z)
	return re*re + im*im
}

func toNative(amps []Complex) []complex128 {
	out := make([]complex128, len(amps))
	for i, a := range amps {
		out[i] = complex128(a)
	}
	return out
}

func fromNative(amps []complex128) []Complex {
	out := make([]Complex, len(amps))
	for i, a := range amps {
		out[i] = Complex(a)
	}
	return out
}
