package harness

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/grover"
)

// Optimal asks the search to pick its own iteration count.
const Optimal = -1

// exactTolerance bounds the gap between the simulated and closed form
// success probability.
const exactTolerance = 1e-6

// Case is one search to verify.
type Case struct {
	Name   string
	Qubits int
	Target int
	// Iterations is the number of oracle+diffuser rounds, or Optimal.
	Iterations int
	// Threshold overrides the derived pass threshold when > 0.
	Threshold float64
}

func (c Case) String() string {
	iter := "optimal"
	if c.Iterations >= 0 {
		iter = fmt.Sprintf("%d iter", c.Iterations)
	}
	return fmt.Sprintf("%d-qubit, target %d, %s", c.Qubits, c.Target, iter)
}

// DefaultCases are the worked examples the algorithm is usually demonstrated on.
func DefaultCases() []Case {
	return []Case{
		{Name: "Test Case 1", Qubits: 2, Target: 2, Iterations: 1},
		{Name: "Test Case 2", Qubits: 3, Target: 5, Iterations: 2},
		{Name: "Test Case 3", Qubits: 3, Target: 0, Iterations: 2},
		{Name: "Test Case 4", Qubits: 4, Target: 13, Iterations: 3},
	}
}

// Report is the verdict for one Case.
type Report struct {
	ID        string
	Case      Case
	Result    *grover.Result
	Counts    grover.Counts
	Shots     int
	Observed  float64
	Expected  float64
	Threshold float64
	Passed    bool
	Reason    string
	Err       error
}

/*
Threshold is the lowest observed frequency that still counts as finding the
target: sigmas binomial standard deviations below p, never below one half.
*/
func Threshold(p float64, shots int, sigmas float64) float64 {
	if shots <= 0 {
		return math.Max(0.5, p)
	}
	sd := math.Sqrt(p * (1 - p) / float64(shots))
	return math.Max(0.5, p-sigmas*sd)
}

/*
Retryable reports whether a failed job is worth running again. Errors from
the simulation are deterministic and never are.
*/
func Retryable(err error) bool {
	for _, target := range []error{
		grover.ErrInvalidRegisterSize,
		grover.ErrIndexOutOfRange,
		grover.ErrNoMarkedItem,
		grover.ErrAllItemsMarked,
		grover.ErrInvalidDistribution,
		grover.ErrNormViolation,
		grover.ErrInvalidIterations,
		grover.ErrInvalidShots,
		context.Canceled,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, target) {
			return false
		}
	}
	return true
}

// Harness verifies batches of cases on a worker pool.
type Harness struct {
	pool   *Pool
	config *Config
}

func New(ctx context.Context, config *Config) *Harness {
	config = config.orDefault()
	return &Harness{
		pool:   NewPool(ctx, config),
		config: config,
	}
}

/*
Evaluate runs one case synchronously: search, measure Shots times with the
given seed, compare against the closed form.
*/
func (h *Harness) Evaluate(c Case, seed uint64) Report {
	report := Report{Case: c, Shots: h.config.Shots}

	res, err := grover.SearchQubits(c.Qubits, c.Target, grover.WithIterations(c.Iterations))
	if err != nil {
		report.Err = err
		report.Reason = err.Error()
		return report
	}
	report.Result = res
	report.Expected = res.Expected()

	counts, err := res.Distribution.Shots(grover.NewSource(seed), h.config.Shots)
	if err != nil {
		report.Err = err
		report.Reason = err.Error()
		return report
	}
	report.Counts = counts
	report.Observed = counts.Frequency(c.Target)

	report.Threshold = c.Threshold
	if report.Threshold <= 0 {
		report.Threshold = Threshold(report.Expected, h.config.Shots, h.config.Sigmas)
	}

	switch exact := res.Probability(); {
	case math.Abs(exact-report.Expected) > exactTolerance:
		report.Reason = fmt.Sprintf("simulated probability %.6f differs from closed form %.6f", exact, report.Expected)
	case report.Observed < report.Threshold:
		report.Reason = fmt.Sprintf("probability (%.4f) below threshold (%.4f)", report.Observed, report.Threshold)
	default:
		report.Passed = true
		report.Reason = "marked item found with high probability"
	}

	return report
}

/*
Run schedules every case as its own job and returns the reports in input
order. Case i samples with Seed+i, so the outcome does not depend on which
worker picks it up.
*/
func (h *Harness) Run(ctx context.Context, cases []Case) ([]Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]<-chan Value, len(cases))
	ids := make([]string, len(cases))

	for i, c := range cases {
		seed := h.config.Seed + uint64(i)
		ids[i] = uuid.NewString()
		results[i] = h.pool.Schedule(ids[i], func() (any, error) {
			return h.Evaluate(c, seed), nil
		})
	}

	reports := make([]Report, len(cases))
	for i, ch := range results {
		select {
		case <-ctx.Done():
			return reports, ctx.Err()
		case v := <-ch:
			if v.Error != nil {
				reports[i] = Report{Case: cases[i], Shots: h.config.Shots, Err: v.Error, Reason: v.Error.Error()}
			} else {
				reports[i] = v.Value.(Report)
			}
			reports[i].ID = ids[i]
		}
	}

	passed := 0
	for _, r := range reports {
		if r.Passed {
			passed++
		}
	}
	errnie.Info("Harness.Run - %d of %d cases passed", passed, len(reports))

	return reports, nil
}

// Metrics exposes the pool metrics.
func (h *Harness) Metrics() map[string]any {
	return h.pool.Metrics().ExportMetrics()
}

func (h *Harness) Close() {
	h.pool.Close()
}

// AllPassed reports whether every report passed.
func AllPassed(reports []Report) bool {
	for _, r := range reports {
		if !r.Passed {
			return false
		}
	}
	return len(reports) > 0
}
