package lsystem

import (
	"context"

	"github.com/matzehuels/lturtle/pkg/errors"
)

// System bundles an axiom, its rules and a generation count.
type System struct {
	Axiom       string `json:"axiom"`
	Rules       Rules  `json:"rules"`
	Generations int    `json:"generations"`
}

// Generate returns Generate(s.Axiom, s.Rules, s.Generations).
func (s System) Generate() string {
	return Generate(s.Axiom, s.Rules, s.Generations)
}

// GenerateContext is the cancellable, limited form of [System.Generate].
func (s System) GenerateContext(ctx context.Context, limit int) (string, error) {
	return GenerateContext(ctx, s.Axiom, s.Rules, s.Generations, limit)
}

// Expand returns a streaming expander over the final generation.
func (s System) Expand() *Expander {
	return NewExpander(s.Axiom, s.Rules, s.Generations)
}

// Length returns the byte length of the final generation.
func (s System) Length() int {
	return Length(s.Axiom, s.Rules, s.Generations)
}

// Validate checks the axiom, the rules and the generation count.
func (s System) Validate() error {
	if s.Axiom == "" {
		return errors.New(errors.ErrCodeInvalidAxiom, "axiom cannot be empty")
	}
	if s.Generations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "generations must be >= 0, got %d", s.Generations)
	}
	return s.Rules.Validate()
}
