package grover

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/theapemachine/errnie"
)

/*
StateVector holds one complex amplitude per basis index of a register. The
squared magnitudes sum to one. Oracle and Diffuser mutate it in place, and
every mutation is followed by a norm check.
*/
type StateVector struct {
	Amplitudes []complex128
	Register   Register

	tolerance float64
}

/*
NewStateVector puts a register of the given basis size into uniform
superposition, every amplitude 1/√N.
*/
func NewStateVector(size int) (*StateVector, error) {
	return newStateVector(size, NewConfig())
}

func newStateVector(size int, cfg *Config) (*StateVector, error) {
	reg, err := registerFor(size, cfg.MaxQubits)
	if err != nil {
		return nil, err
	}

	amp := complex(1/math.Sqrt(float64(size)), 0)
	amps := make([]complex128, size)
	for i := range amps {
		amps[i] = amp
	}

	errnie.Info("NewStateVector - size %d, qubits %d", size, reg.Qubits)

	return &StateVector{
		Amplitudes: amps,
		Register:   reg,
		tolerance:  cfg.Tolerance,
	}, nil
}

// Size returns N, the number of basis indices.
func (sv *StateVector) Size() int {
	return len(sv.Amplitudes)
}

// Amplitude returns the raw amplitude at index.
func (sv *StateVector) Amplitude(index int) (complex128, error) {
	if index < 0 || index >= len(sv.Amplitudes) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(sv.Amplitudes))
	}
	return sv.Amplitudes[index], nil
}

// ProbabilityOf returns |amplitude[index]|².
func (sv *StateVector) ProbabilityOf(index int) (float64, error) {
	amp, err := sv.Amplitude(index)
	if err != nil {
		return 0, err
	}
	return probability(amp), nil
}

// TotalProbability sums the squared magnitudes of every amplitude.
func (sv *StateVector) TotalProbability() float64 {
	var total float64
	for _, amp := range sv.Amplitudes {
		total += probability(amp)
	}
	return total
}

/*
Check returns ErrNormViolation when the total probability has moved further
than the configured tolerance from one.
*/
func (sv *StateVector) Check() error {
	total := sv.TotalProbability()
	if math.Abs(total-1) > sv.tolerance {
		return fmt.Errorf("%w: total probability %.15f", ErrNormViolation, total)
	}
	return nil
}

/*
Normalize rescales every amplitude so the total probability is exactly one
up to rounding. It only fails for the zero vector.
*/
func (sv *StateVector) Normalize() error {
	total := sv.TotalProbability()
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return fmt.Errorf("%w: cannot normalize total probability %v", ErrNormViolation, total)
	}

	scale := complex(1/math.Sqrt(total), 0)
	for i := range sv.Amplitudes {
		sv.Amplitudes[i] *= scale
	}
	return nil
}

// Clone returns an independent copy.
func (sv *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(sv.Amplitudes))
	copy(amps, sv.Amplitudes)
	return &StateVector{Amplitudes: amps, Register: sv.Register, tolerance: sv.tolerance}
}

func probability(amp complex128) float64 {
	return real(amp * cmplx.Conj(amp))
}
