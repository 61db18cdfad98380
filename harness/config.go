package harness

import (
	"runtime"
	"time"
)

type Config struct {
	Workers           int
	SchedulingTimeout time.Duration
	JobTimeout        time.Duration
	ResultTTL         time.Duration

	// Shots is the number of simulated measurements per case.
	Shots int
	// Seed makes a batch reproducible. Case i samples with Seed+i.
	Seed uint64
	// Sigmas is how many binomial standard deviations below the closed
	// form probability the observed frequency may fall and still pass.
	Sigmas float64
}

func NewConfig() *Config {
	return &Config{
		Workers:           runtime.NumCPU(),
		SchedulingTimeout: 10 * time.Second,
		JobTimeout:        30 * time.Second,
		ResultTTL:         time.Minute,
		Shots:             1024,
		Seed:              1,
		Sigmas:            4,
	}
}

func (cfg *Config) orDefault() *Config {
	if cfg == nil {
		return NewConfig()
	}
	return cfg
}
