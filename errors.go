package grover

import "errors"

var (
	// ErrInvalidRegisterSize is returned when a basis size is not a power of
	// two of at least 2, or exceeds the configured qubit limit.
	ErrInvalidRegisterSize = errors.New("invalid register size")

	// ErrIndexOutOfRange is returned for a basis index outside [0, N).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoMarkedItem is returned when a search has nothing to look for.
	ErrNoMarkedItem = errors.New("no marked item")

	// ErrAllItemsMarked is returned when every basis index is marked, which
	// leaves nothing to amplify.
	ErrAllItemsMarked = errors.New("all items marked")

	// ErrInvalidDistribution is returned by the sampler when probabilities do
	// not sum to one within tolerance.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrNormViolation signals the state vector left the unit sphere. It is a
	// logic fault in an operator, not a caller mistake.
	ErrNormViolation = errors.New("state vector norm violated")

	// ErrInvalidBitstring is returned when a bitstring holds anything other
	// than '0' and '1' or does not fit the register.
	ErrInvalidBitstring = errors.New("invalid bitstring")

	// ErrInvalidIterations is returned for a negative iteration count.
	ErrInvalidIterations = errors.New("invalid iteration count")
)

// ErrInvalidShots is returned when a measurement run asks for no shots.
var ErrInvalidShots = errors.New("invalid shot count")
