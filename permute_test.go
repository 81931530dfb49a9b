package qket

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBitPositions(t *testing.T) {
	Convey("Given a three-qubit index space", t, func() {
		n := 3

		Convey("Qubit 0 should be the most significant bit", func() {
			So(qubitMask(n, 0), ShouldEqual, 4)
			So(qubitMask(n, 1), ShouldEqual, 2)
			So(qubitMask(n, 2), ShouldEqual, 1)
			So(positionsMask(n, []int{0, 2}), ShouldEqual, 5)
		})

		Convey("gatherBits should pack selected bits in position order", func() {
			// index 6 = |110>: qubit 0 = 1, qubit 1 = 1, qubit 2 = 0
			So(gatherBits(6, n, []int{0}), ShouldEqual, 1)
			So(gatherBits(6, n, []int{2}), ShouldEqual, 0)
			So(gatherBits(6, n, []int{2, 0}), ShouldEqual, 1)
			So(gatherBits(6, n, []int{0, 2}), ShouldEqual, 2)
			So(gatherBits(6, n, []int{0, 1, 2}), ShouldEqual, 6)
		})

		Convey("scatterBits should invert gatherBits", func() {
			for _, positions := range [][]int{{0}, {1, 2}, {2, 0}, {2, 1, 0}} {
				for index := 0; index < 1<<n; index++ {
					sub := gatherBits(index, n, positions)
					So(scatterBits(index, sub, n, positions), ShouldEqual, index)

					base := index &^ positionsMask(n, positions)
					So(scatterBits(base, sub, n, positions), ShouldEqual, index)
				}
			}
		})

		Convey("scatterBits should overwrite target bits only", func() {
			So(scatterBits(7, 0, n, []int{1}), ShouldEqual, 5)
			So(scatterBits(0, 3, n, []int{2, 0}), ShouldEqual, 5)
		})

		Convey("permuteIndex should be a bijection for any qubit order", func() {
			order := []int{2, 0, 1}
			seen := make(map[int]bool)
			for index := 0; index < 1<<n; index++ {
				seen[permuteIndex(index, n, order)] = true
			}
			So(len(seen), ShouldEqual, 1<<n)

			// |100> has qubit 0 set; moved to position 1 it reads |010>.
			So(permuteIndex(4, n, order), ShouldEqual, 2)
		})

		Convey("bitString should list the most significant bit first", func() {
			So(bitString(6, 3), ShouldEqual, "110")
			So(bitString(1, 4), ShouldEqual, "0001")
		})
	})
}
