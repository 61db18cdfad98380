package grover

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

// Option configures a single SearchAll call.
type Option func(*searchOptions)

type searchOptions struct {
	cfg        *Config
	iterations int
	observer   func(round int, sv *StateVector)
}

// WithConfig replaces the default numeric limits.
func WithConfig(cfg *Config) Option {
	return func(o *searchOptions) {
		o.cfg = cfg
	}
}

// WithIterations runs exactly k rounds instead of the optimal count.
func WithIterations(k int) Option {
	return func(o *searchOptions) {
		o.iterations = k
	}
}

// WithObserver is called after every round with the live state vector.
// The observer must not mutate it.
func WithObserver(fn func(round int, sv *StateVector)) Option {
	return func(o *searchOptions) {
		o.observer = fn
	}
}

// Result is the outcome of one search.
type Result struct {
	Register     Register
	Marked       []int
	Iterations   int
	Distribution Distribution
}

// Size returns N.
func (r *Result) Size() int {
	return r.Register.Size()
}

// Probability returns the total probability mass on the marked indices.
func (r *Result) Probability() float64 {
	return sumAt(r.Distribution, r.Marked)
}

// Expected returns the closed form success probability for this run.
func (r *Result) Expected() float64 {
	return SuccessProbability(r.Size(), len(r.Marked), r.Iterations)
}

// Sample performs a single simulated measurement.
func (r *Result) Sample(rng RandomSource) (int, error) {
	return r.Distribution.Sample(rng)
}

/*
Search looks for one marked index in a basis of the given size, running the
optimal number of rounds, and returns the final readout distribution.
*/
func Search(size, marked int) (Distribution, error) {
	res, err := SearchAll(size, []int{marked})
	if err != nil {
		return nil, err
	}
	return res.Distribution, nil
}

// SearchQubits is Search for a register given in qubits.
func SearchQubits(qubits, marked int, opts ...Option) (*Result, error) {
	if qubits < 1 || qubits > 62 {
		return nil, fmt.Errorf("%w: %d qubits", ErrInvalidRegisterSize, qubits)
	}
	return SearchAll(Register{Qubits: qubits}.Size(), []int{marked}, opts...)
}

/*
SearchAll is the general entry point: any number of marked indices, with the
iteration count, limits and a per-round observer open to options.
*/
func SearchAll(size int, marked []int, opts ...Option) (*Result, error) {
	o := &searchOptions{iterations: -1}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.cfg.orDefault()

	reg, err := registerFor(size, cfg.MaxQubits)
	if err != nil {
		return nil, err
	}

	oracle, err := NewOracle(size, marked...)
	if err != nil {
		return nil, err
	}

	iterations := o.iterations
	if iterations < 0 {
		if iterations, err = OptimalIterations(size, oracle.Count()); err != nil {
			return nil, err
		}
	}

	sv, err := newStateVector(size, cfg)
	if err != nil {
		return nil, err
	}

	ctrl := NewController(cfg)
	ctrl.OnRound = o.observer

	if _, err = ctrl.run(sv, oracle, iterations); err != nil {
		return nil, err
	}

	dist := NewSampler(cfg).Distribution(sv)

	errnie.Info(
		"Search - size %d, marked %v, iterations %d, probability %.6f",
		size,
		oracle.Marked(),
		iterations,
		sumAt(dist, oracle.Marked()),
	)

	return &Result{
		Register:     reg,
		Marked:       oracle.Marked(),
		Iterations:   iterations,
		Distribution: dist,
	}, nil
}

func sumAt(dist Distribution, indices []int) float64 {
	var total float64
	for _, idx := range indices {
		total += dist[idx]
	}
	return total
}
