package grover

import (
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
)

/*
OptimalIterations returns max(1, round(π/4 · √(N/M))) for a basis of size N
with M marked indices. It fails with ErrNoMarkedItem for M = 0 and with
ErrAllItemsMarked for M >= N.
*/
func OptimalIterations(size, markedCount int) (int, error) {
	if markedCount <= 0 {
		return 0, ErrNoMarkedItem
	}
	if markedCount >= size {
		return 0, fmt.Errorf("%w: %d of %d", ErrAllItemsMarked, markedCount, size)
	}

	k := int(math.Round(math.Pi / 4 * math.Sqrt(float64(size)/float64(markedCount))))
	return max(1, k), nil
}

/*
SuccessProbability is the closed form probability of reading a marked index
after k rounds: sin²((2k+1)·θ) with θ = asin(√(M/N)).
*/
func SuccessProbability(size, markedCount, iterations int) float64 {
	if size <= 0 || markedCount <= 0 {
		return 0
	}
	if markedCount >= size {
		return 1
	}

	theta := math.Asin(math.Sqrt(float64(markedCount) / float64(size)))
	s := math.Sin(float64(2*iterations+1) * theta)
	return s * s
}

/*
Controller drives the oracle/diffuser loop. Rounds run strictly in sequence,
oracle first, on a state vector the caller owns for the duration of Run.
*/
type Controller struct {
	cfg      *Config
	diffuser Diffuser

	// OnRound, when set, is called after every completed round with the
	// 1-based round number.
	OnRound func(round int, sv *StateVector)
}

func NewController(cfg *Config) *Controller {
	return &Controller{cfg: cfg.orDefault()}
}

/*
Run applies the oracle for marked followed by the diffuser, iterations times,
and returns the same state vector it was given.
*/
func (c *Controller) Run(sv *StateVector, marked []int, iterations int) (*StateVector, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, iterations)
	}

	oracle, err := NewOracle(sv.Size(), marked...)
	if err != nil {
		return nil, err
	}

	return c.run(sv, oracle, iterations)
}

func (c *Controller) run(sv *StateVector, oracle *Oracle, iterations int) (*StateVector, error) {
	errnie.Info(
		"Controller.Run - size %d, marked %v, iterations %d",
		sv.Size(),
		oracle.Marked(),
		iterations,
	)

	for round := 1; round <= iterations; round++ {
		if err := oracle.Apply(sv); err != nil {
			return nil, fmt.Errorf("round %d oracle: %w", round, err)
		}

		c.diffuser.Apply(sv)

		if err := c.settle(sv); err != nil {
			return nil, fmt.Errorf("round %d diffuser: %w", round, err)
		}

		if c.OnRound != nil {
			c.OnRound(round, sv)
		}
	}

	return sv, nil
}

// settle absorbs rounding drift up to DriftLimit, then enforces Tolerance.
func (c *Controller) settle(sv *StateVector) error {
	total := sv.TotalProbability()
	if drift := math.Abs(total - 1); drift > c.cfg.DriftLimit || math.IsNaN(drift) {
		return fmt.Errorf("%w: drift %.3g exceeds %.3g", ErrNormViolation, drift, c.cfg.DriftLimit)
	}

	if c.cfg.Renormalize {
		if err := sv.Normalize(); err != nil {
			return err
		}
	}

	return sv.Check()
}
