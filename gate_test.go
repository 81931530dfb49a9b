package qket

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func randomSystem(rng *rand.Rand, n int) *System {
	qubits := make([]*State, n)
	for i := range qubits {
		qubits[i] = randomQubit(rng)
	}

	sys, err := NewSystem(qubits...)
	if err != nil {
		panic(err)
	}
	return sys
}

func TestNewGate(t *testing.T) {
	Convey("Given gate matrices", t, func() {
		Convey("A unitary matrix should construct", func() {
			g, err := NewGate("iSWAP", 2, []complex128{
				1, 0, 0, 0,
				0, 0, 1i, 0,
				0, 1i, 0, 0,
				0, 0, 0, 1,
			})
			So(err, ShouldBeNil)
			So(g.Name(), ShouldEqual, "iSWAP")
			So(g.Qubits(), ShouldEqual, 2)
			So(g.Dim(), ShouldEqual, 4)
			So(g.At(1, 2), ShouldEqual, ComplexI)
		})

		Convey("A non-unitary matrix should fail", func() {
			_, err := NewGate("half", 1, []complex128{0.5, 0, 0, 0.5})
			So(errors.Is(err, ErrInvalidGate), ShouldBeTrue)

			var gateErr *InvalidGateError
			So(errors.As(err, &gateErr), ShouldBeTrue)
			So(gateErr.Reason, ShouldEqual, ReasonNotUnitary)
			So(gateErr.Gate, ShouldEqual, "half")
		})

		Convey("Wrong-sized data should fail", func() {
			_, err := NewGate("short", 1, []complex128{1, 0, 0})
			var gateErr *InvalidGateError
			So(errors.As(err, &gateErr), ShouldBeTrue)
			So(gateErr.Reason, ShouldEqual, ReasonDimension)

			_, err = NewGate("none", 0, []complex128{1})
			So(errors.Is(err, ErrInvalidGate), ShouldBeTrue)

			_, err = NewGate("wide", MaxQubits+1, nil)
			So(errors.As(err, &gateErr), ShouldBeTrue)
			So(gateErr.Reason, ShouldEqual, ReasonDimension)
		})

		Convey("The constructor should copy its input", func() {
			data := []complex128{0, 1, 1, 0}
			g, err := NewGate("x", 1, data)
			So(err, ShouldBeNil)
			data[0] = 42
			So(g.At(0, 0), ShouldEqual, ComplexZero)
			So(g.Matrix(), ShouldResemble, []complex128{0, 1, 1, 0})
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Given the standard gate catalog", t, func() {
		Convey("Every catalog gate should be unitary", func() {
			for _, name := range Catalog() {
				g, ok := Lookup(name)
				So(ok, ShouldBeTrue)
				So(isUnitary(g.matrix), ShouldBeTrue)
			}
		})

		Convey("Lookup should ignore case and reject unknown names", func() {
			g, ok := Lookup("cnot")
			So(ok, ShouldBeTrue)
			So(g, ShouldEqual, CNOT)

			_, ok = Lookup("nope")
			So(ok, ShouldBeFalse)
		})

		Convey("Parameterised gates should be unitary for any angle", func() {
			for _, theta := range []float64{0, 0.3, math.Pi / 2, math.Pi, -2.1} {
				for _, g := range []*Gate{RX(theta), RY(theta), RZ(theta), Phase(theta)} {
					So(isUnitary(g.matrix), ShouldBeTrue)
				}
			}
		})

		Convey("Dagger should undo the gate", func() {
			rng := rand.New(rand.NewPCG(3, 4))
			for _, g := range []*Gate{H, S, T, SX, RX(0.7), Y} {
				sys := randomSystem(rng, 1)
				before := sys.Snapshot()

				So(sys.ApplyGate(g, 0), ShouldBeNil)
				So(sys.ApplyGate(g.Dagger(), 0), ShouldBeNil)
				So(sys.Snapshot().Equal(before, Epsilon), ShouldBeTrue)
			}
		})

		Convey("Named relations between gates should hold", func() {
			So(Sdg.Name(), ShouldEqual, "SDG")
			So(Toffoli.Qubits(), ShouldEqual, 3)

			cx := X.Controlled()
			So(cx.Matrix(), ShouldResemble, CNOT.Matrix())
			So(cx.Name(), ShouldEqual, "CX")

			sx := SX.Matrix()
			for r := 0; r < 2; r++ {
				for c := 0; c < 2; c++ {
					var acc complex128
					for k := 0; k < 2; k++ {
						acc += sx[r*2+k] * sx[k*2+c]
					}
					So(Complex(acc).Equal(X.At(r, c), Epsilon), ShouldBeTrue)
				}
			}
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given a system", t, func() {
		rng := rand.New(rand.NewPCG(5, 6))

		Convey("X twice should return the original state", func() {
			for i := 0; i < 20; i++ {
				sys := randomSystem(rng, 3)
				before := sys.Snapshot()
				q := i % 3

				So(sys.ApplyGate(X, q), ShouldBeNil)
				So(sys.ApplyGate(X, q), ShouldBeNil)
				So(sys.Snapshot().Equal(before, Epsilon), ShouldBeTrue)
			}
		})

		Convey("X should flip only its target qubit", func() {
			sys, err := NewZeroSystem(3)
			So(err, ShouldBeNil)
			So(sys.ApplyGate(X, 1), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|010>")
		})

		Convey("CNOT positions should read control first", func() {
			sys, err := NewSystem(KetZero(), KetOne(), KetZero())
			So(err, ShouldBeNil)

			// control qubit 1 is |1>, so target qubit 2 flips
			So(sys.ApplyGate(CNOT, 1, 2), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|011>")

			// control qubit 0 is |0>, nothing happens
			So(sys.ApplyGate(CNOT, 0, 1), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|011>")

			// reversed positions make qubit 2 the control
			So(sys.ApplyGate(CNOT, 2, 0), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|111>")
		})

		Convey("SWAP on non-adjacent qubits should exchange them", func() {
			sys, err := NewSystem(KetOne(), KetZero(), KetZero())
			So(err, ShouldBeNil)
			So(sys.ApplyGate(SWAP, 0, 2), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|001>")
		})

		Convey("Toffoli should need both controls", func() {
			sys, err := NewSystem(KetOne(), KetZero(), KetZero())
			So(err, ShouldBeNil)
			So(sys.ApplyGate(Toffoli, 0, 1, 2), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|100>")

			So(sys.ApplyGate(X, 1), ShouldBeNil)
			So(sys.ApplyGate(Toffoli, 0, 1, 2), ShouldBeNil)
			So(sys.String(), ShouldEqual, "(1+0i)|111>")
		})

		Convey("A gate on a subset should equal the gate tensored with identity", func() {
			a, b := randomQubit(rng), randomQubit(rng)
			sys, err := NewSystem(a, b)
			So(err, ShouldBeNil)
			So(sys.ApplyGate(H, 1), ShouldBeNil)

			hb, err := NewSystem(b)
			So(err, ShouldBeNil)
			So(hb.ApplyGate(H, 0), ShouldBeNil)

			So(sys.Snapshot().Equal(Tensor(a, hb.Snapshot()), Epsilon), ShouldBeTrue)
		})

		Convey("Any sequence of gates should keep the state normalised", func() {
			sys := randomSystem(rng, 4)
			gates := []*Gate{H, X, Y, Z, S, T, SX, RX(0.4), RY(1.3), RZ(2.2), Phase(0.9)}

			for i := 0; i < 200; i++ {
				g := gates[rng.IntN(len(gates))]
				So(sys.ApplyGate(g, rng.IntN(4)), ShouldBeNil)

				p := rng.Perm(4)
				So(sys.ApplyGate(CNOT, p[0], p[1]), ShouldBeNil)
			}

			So(sys.Snapshot().Norm2(), ShouldAlmostEqual, 1.0, Epsilon)
		})

		Convey("Bad positions should fail without touching the state", func() {
			sys := randomSystem(rng, 2)
			before := sys.Snapshot()

			cases := []struct {
				gate      *Gate
				positions []int
				reason    string
			}{
				{H, []int{}, ReasonCount},
				{H, []int{0, 1}, ReasonCount},
				{CNOT, []int{0}, ReasonCount},
				{H, []int{2}, ReasonOutOfRange},
				{H, []int{-1}, ReasonOutOfRange},
				{CNOT, []int{1, 1}, ReasonDuplicate},
			}

			for _, tc := range cases {
				err := sys.ApplyGate(tc.gate, tc.positions...)
				So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)

				var dimErr *DimensionMismatchError
				So(errors.As(err, &dimErr), ShouldBeTrue)
				So(dimErr.Reason, ShouldEqual, tc.reason)
			}

			So(sys.Snapshot().Equal(before, 0), ShouldBeTrue)
		})
	})
}

func TestSettle(t *testing.T) {
	Convey("Given amplitudes after a transformation", t, func() {
		Convey("Small drift should be scaled away", func() {
			amps := []complex128{complex(math.Sqrt(1+1e-8), 0), 0}
			So(func() { settle(amps, "test") }, ShouldNotPanic)
			So(norm2(amps), ShouldAlmostEqual, 1.0, Epsilon)
		})

		Convey("A NaN or Inf norm should panic rather than rescale", func() {
			So(func() { settle([]complex128{complex(math.NaN(), 0), 0}, "test") }, ShouldPanic)
			So(func() { settle([]complex128{complex(math.Inf(1), 0), 0}, "test") }, ShouldPanic)
		})

		Convey("A large breach should panic", func() {
			amps := []complex128{0.5, 0.5}
			So(func() { settle(amps, "test") }, ShouldPanic)
		})
	})
}
