package qket

/*
Bit-position bookkeeping shared by gate application and measurement.

Qubit q of an n-qubit system lives at bit n-1-q of the basis index, so
qubit 0 is the most significant bit and the bit-string of an index reads
qubit 0 first. A selection of positions defines a sub-index of len(positions)
bits in which positions[0] is the most significant bit.
*/

// qubitMask returns the basis-index bit that carries qubit q.
func qubitMask(n, q int) int {
	return 1 << (n - 1 - q)
}

// positionsMask ORs together the bits of every selected qubit.
func positionsMask(n int, positions []int) int {
	mask := 0
	for _, q := range positions {
		mask |= qubitMask(n, q)
	}
	return mask
}

/*
gatherBits extracts the selected qubits' bits from a full basis index and
packs them into a sub-index, positions[0] first. With positions a full
permutation of 0..n-1 this is the index under the reordered qubits.
*/
func gatherBits(index, n int, positions []int) int {
	sub := 0
	for _, q := range positions {
		sub <<= 1
		if index&qubitMask(n, q) != 0 {
			sub |= 1
		}
	}
	return sub
}

// scatterBits writes the bits of sub into base at the selected qubits. It is the inverse of gatherBits.
func scatterBits(base, sub, n int, positions []int) int {
	k := len(positions)
	for t, q := range positions {
		mask := qubitMask(n, q)
		if (sub>>(k-1-t))&1 == 1 {
			base |= mask
		} else {
			base &^= mask
		}
	}
	return base
}

// permuteIndex maps a basis index to the index it has once qubit order[t] is moved to position t.
func permuteIndex(index, n int, order []int) int {
	return gatherBits(index, n, order)
}

// bitString renders the low width bits of v, most significant first.
func bitString(v, width int) string {
	buf := make([]byte, width)
	for i := range buf {
		if (v>>(width-1-i))&1 == 1 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
