package generator

import (
	"errors"
	"fmt"

	"pgregory.net/rand"

	"svw.info/rulerush/internal/config"
)

// ErrGenerationFailure marks an exhausted sampling budget.
var ErrGenerationFailure = errors.New("round generation failed")

// ErrInvalidCount is returned for pools smaller than one object.
var ErrInvalidCount = errors.New("object count must be >= 1")

// Stage names the sampling step that ran out of attempts.
type Stage string

const (
	StageValid      Stage = "valid"
	StageDistractor Stage = "distractor"
)

// GenerationError describes where sampling gave up.
type GenerationError struct {
	Stage    Stage
	Slot     int
	Attempts int
}

func (e *GenerationError) Error() string {
	if e.Stage == StageDistractor {
		return fmt.Sprintf("no distractor for slot %d after %d attempts", e.Slot, e.Attempts)
	}
	return fmt.Sprintf("no valid object after %d attempts", e.Attempts)
}

func (e *GenerationError) Unwrap() error { return ErrGenerationFailure }

// Pool builds round object pools by rejection sampling.
// It is not safe for concurrent use.
type Pool struct {
	cfg config.Generator
	rng *rand.Rand
}

// NewPool wires a generator around a seeded source.
func NewPool(cfg config.Generator, rng *rand.Rand) *Pool {
	return &Pool{cfg: cfg, rng: rng}
}
