package grover

import (
	"fmt"
	"math/bits"
	"strconv"
)

/*
Register is a set of data qubits. Its basis space holds 2^Qubits indices.
Any ancilla the physical oracle would need is not part of the register.
*/
type Register struct {
	Qubits int
}

// Size returns the number of basis indices.
func (r Register) Size() int {
	return 1 << r.Qubits
}

// Contains reports whether index is a valid basis index of the register.
func (r Register) Contains(index int) bool {
	return index >= 0 && index < r.Size()
}

// Bitstring renders index the way a measurement readout prints it.
func (r Register) Bitstring(index int) string {
	return FormatBitstring(index, r.Qubits)
}

// RegisterFor validates a basis size and returns the register that spans it.
func RegisterFor(size int) (Register, error) {
	return registerFor(size, NewConfig().MaxQubits)
}

func registerFor(size, maxQubits int) (Register, error) {
	if size < 2 || size&(size-1) != 0 {
		return Register{}, fmt.Errorf("%w: %d is not a power of two >= 2", ErrInvalidRegisterSize, size)
	}

	qubits := bits.TrailingZeros(uint(size))
	if qubits > maxQubits {
		return Register{}, fmt.Errorf("%w: %d qubits exceeds limit of %d", ErrInvalidRegisterSize, qubits, maxQubits)
	}

	return Register{Qubits: qubits}, nil
}

/*
FormatBitstring renders index as a zero padded binary string of width qubits,
most significant qubit first. Index 5 on three qubits is "101".
*/
func FormatBitstring(index, qubits int) string {
	return fmt.Sprintf("%0*b", qubits, index)
}

// ParseBitstring is the inverse of FormatBitstring. The register width is
// the length of the string.
func ParseBitstring(s string) (index int, qubits int, err error) {
	if len(s) == 0 || len(s) > 62 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidBitstring, s)
	}

	for _, r := range s {
		if r != '0' && r != '1' {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidBitstring, s)
		}
	}

	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidBitstring, err)
	}

	return int(v), len(s), nil
}
