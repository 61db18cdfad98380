package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/theapemachine/grover"
	"github.com/theapemachine/grover/harness"
)

func main() {
	qubits := flag.Int("qubits", 0, "Number of data qubits (0 runs the worked cases)")
	target := flag.Int("target", 0, "Index to search for")
	bitstring := flag.String("bitstring", "", "Target as a bitstring, e.g. 101 (overrides -qubits and -target)")
	iterations := flag.Int("iterations", harness.Optimal, "Oracle+diffuser rounds (-1 picks the optimal count)")
	threshold := flag.Float64("threshold", 0, "Pass threshold (0 derives it from the closed form)")
	shots := flag.Int("shots", 1024, "Simulated measurements per case")
	seed := flag.Uint64("seed", 1, "Random seed for measurements")
	workers := flag.Int("workers", 0, "Worker count (0 uses every CPU)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall deadline")
	flag.Parse()

	cases := harness.DefaultCases()

	switch {
	case *bitstring != "":
		idx, n, err := grover.ParseBitstring(*bitstring)
		if err != nil {
			log.Fatalf("Invalid target: %v", err)
		}
		cases = []harness.Case{{Name: "Search " + *bitstring, Qubits: n, Target: idx, Iterations: *iterations, Threshold: *threshold}}
	case *qubits > 0:
		cases = []harness.Case{{Name: "Search", Qubits: *qubits, Target: *target, Iterations: *iterations, Threshold: *threshold}}
	}

	cfg := harness.NewConfig()
	cfg.Shots = *shots
	cfg.Seed = *seed
	if *workers > 0 {
		cfg.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	h := harness.New(ctx, cfg)
	reports, err := h.Run(ctx, cases)
	h.Close()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	for _, r := range reports {
		fmt.Println(harness.RenderHistogram(r))
	}
	fmt.Println(harness.RenderSummary(reports))

	if !harness.AllPassed(reports) {
		os.Exit(1)
	}
}
