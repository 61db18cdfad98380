package grover

// Config holds the numeric limits used by the simulation.
type Config struct {
	// MaxQubits bounds the register so the amplitude array stays in memory.
	MaxQubits int
	// Tolerance is the allowed distance of the total probability from 1
	// at every operator exit point.
	Tolerance float64
	// DriftLimit is the largest rounding drift the per-round
	// renormalization will absorb before reporting ErrNormViolation.
	DriftLimit float64
	// SampleTolerance is how far from 1 a distribution may sum before the
	// sampler refuses it.
	SampleTolerance float64
	// Renormalize rescales the state after every oracle+diffuser round.
	Renormalize bool
}

func NewConfig() *Config {
	return &Config{
		MaxQubits:       20,
		Tolerance:       1e-9,
		DriftLimit:      1e-6,
		SampleTolerance: 1e-6,
		Renormalize:     true,
	}
}

func (cfg *Config) orDefault() *Config {
	if cfg == nil {
		return NewConfig()
	}
	return cfg
}
