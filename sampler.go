package grover

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

/*
RandomSource is the only randomness the sampler uses. *rand.Rand satisfies
it; pass a seeded one to make measurements reproducible.
*/
type RandomSource interface {
	Float64() float64
}

// NewSource returns a PCG backed generator seeded from a single value.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

/*
Distribution maps each basis index to the probability of reading it out.
It is a snapshot taken from a state vector and does not change with it.
*/
type Distribution []float64

// Probability returns the probability of index.
func (d Distribution) Probability(index int) (float64, error) {
	if index < 0 || index >= len(d) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(d))
	}
	return d[index], nil
}

func (d Distribution) Sum() float64 {
	var total float64
	for _, p := range d {
		total += p
	}
	return total
}

// MostLikely returns the lowest index holding the highest probability.
func (d Distribution) MostLikely() int {
	best := 0
	for i, p := range d {
		if p > d[best] {
			best = i
		}
	}
	return best
}

// Validate fails with ErrInvalidDistribution when the entries are not
// probabilities summing to one within tolerance.
func (d Distribution) Validate(tolerance float64) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidDistribution)
	}

	for i, p := range d {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("%w: entry %d is %v", ErrInvalidDistribution, i, p)
		}
	}

	if sum := d.Sum(); math.Abs(sum-1) > tolerance {
		return fmt.Errorf("%w: sums to %.12f", ErrInvalidDistribution, sum)
	}
	return nil
}

// Sample draws one index weighted by probability.
func (d Distribution) Sample(rng RandomSource) (int, error) {
	if err := d.Validate(NewConfig().SampleTolerance); err != nil {
		return 0, err
	}
	return d.draw(rng), nil
}

// Shots draws shots independent measurements and tallies them.
func (d Distribution) Shots(rng RandomSource, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}
	if err := d.Validate(NewConfig().SampleTolerance); err != nil {
		return nil, err
	}
	return d.tally(rng, shots), nil
}

func (d Distribution) tally(rng RandomSource, shots int) Counts {
	counts := make(Counts)
	for range shots {
		counts[d.draw(rng)]++
	}
	return counts
}

// draw walks the cumulative distribution. Zero entries are never chosen.
func (d Distribution) draw(rng RandomSource) int {
	r := rng.Float64() * d.Sum()

	var cumulative float64
	last := 0
	for i, p := range d {
		if p == 0 {
			continue
		}
		last = i
		cumulative += p
		if r < cumulative {
			return i
		}
	}

	return last
}

// Counts tallies measured indices.
type Counts map[int]int

func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Frequency returns the observed fraction of shots that landed on index.
func (c Counts) Frequency(index int) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c[index]) / float64(total)
}

// Bitstrings keys the counts by readout bitstring.
func (c Counts) Bitstrings(qubits int) map[string]int {
	out := make(map[string]int, len(c))
	for idx, n := range c {
		out[FormatBitstring(idx, qubits)] = n
	}
	return out
}

// Indices returns the measured indices in ascending order.
func (c Counts) Indices() []int {
	out := make([]int, 0, len(c))
	for idx := range c {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

/*
Sampler reads a final state vector out, either as a full distribution or as
simulated measurements.
*/
type Sampler struct {
	tolerance float64
}

func NewSampler(cfg *Config) *Sampler {
	return &Sampler{tolerance: cfg.orDefault().SampleTolerance}
}

// Distribution squares every amplitude. It does not touch the state vector.
func (s *Sampler) Distribution(sv *StateVector) Distribution {
	dist := make(Distribution, len(sv.Amplitudes))
	for i, amp := range sv.Amplitudes {
		dist[i] = probability(amp)
	}
	return dist
}

// Sample measures the state once.
func (s *Sampler) Sample(sv *StateVector, rng RandomSource) (int, error) {
	dist := s.Distribution(sv)
	if err := dist.Validate(s.tolerance); err != nil {
		return 0, err
	}
	return dist.draw(rng), nil
}

// Shots measures the state shots times.
func (s *Sampler) Shots(sv *StateVector, rng RandomSource, shots int) (Counts, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	dist := s.Distribution(sv)
	if err := dist.Validate(s.tolerance); err != nil {
		return nil, err
	}
	return dist.tally(rng, shots), nil
}
