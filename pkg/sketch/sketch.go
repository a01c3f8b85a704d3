// Package sketch couples a turtle with an evolving L-system the way the
// interactive sketch does: key presses drive the turtle directly, triggers
// rewrite the grammar, and each step draws the symbol under the cursor.
//
// A Sketch is owned by one event loop (the play TUI, a test) and is not safe
// for concurrent use.
package sketch

import (
	"context"

	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

// Sketch is the interactive controller.
type Sketch struct {
	turtle  *turtle.Turtle
	gen     *lsystem.Generation
	rules   lsystem.Rules
	keys    turtle.Keymap
	symbols turtle.SymbolMap
	width   float64
	height  float64
}

// New builds a sketch from cfg. The turtle starts in the middle of the
// configured canvas.
func New(cfg config.Config) (*Sketch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sys, err := cfg.System()
	if err != nil {
		return nil, err
	}

	tc := cfg.TurtleConfig()
	tc.Origin = turtle.Point{X: cfg.Render.Width / 2, Y: cfg.Render.Height / 2}

	gen := lsystem.NewGeneration(sys.Axiom, sys.Generations)
	gen.Limit = cfg.Grammar.MaxLength

	return &Sketch{
		turtle:  turtle.New(tc),
		gen:     gen,
		rules:   sys.Rules,
		keys:    turtle.DefaultKeymap(),
		symbols: cfg.Symbols(),
		width:   cfg.Render.Width,
		height:  cfg.Render.Height,
	}, nil
}

// Key dispatches the command bound to r. Unbound keys do nothing.
func (s *Sketch) Key(r rune) (turtle.Segment, bool) {
	cmd, ok := s.keys.Lookup(r)
	if !ok {
		return turtle.Segment{}, false
	}
	return s.turtle.Dispatch(cmd)
}

// Trigger applies one round of rewrite passes to the current string and
// advances the cursor. When the result would exceed the configured maximum
// length the previous string is kept and the error wraps
// [lsystem.ErrTooLong].
func (s *Sketch) Trigger() error {
	return s.TriggerContext(context.Background())
}

// TriggerContext is [Sketch.Trigger] with cancellation.
func (s *Sketch) TriggerContext(ctx context.Context) error {
	return s.gen.Advance(ctx, s.rules)
}

// Step interprets the symbol under the cursor and moves the cursor on.
// It reports a segment only when the symbol drew one.
func (s *Sketch) Step() (turtle.Segment, bool) {
	sym, ok := s.gen.Symbol()
	if !ok {
		return turtle.Segment{}, false
	}
	defer s.gen.StepCursor()

	cmd, ok := s.symbols[sym]
	if !ok {
		return turtle.Segment{}, false
	}
	return s.turtle.Dispatch(cmd)
}

// Reset returns the turtle to the canvas centre and the grammar to its axiom.
func (s *Sketch) Reset() {
	s.turtle.Reset()
	s.gen.Reset()
}

// State returns the turtle state.
func (s *Sketch) State() turtle.State { return s.turtle.State() }

// Generation exposes the grammar state for display.
func (s *Sketch) Generation() *lsystem.Generation { return s.gen }

// Canvas returns the configured canvas size.
func (s *Sketch) Canvas() (width, height float64) { return s.width, s.height }

// Keymap returns the key bindings.
func (s *Sketch) Keymap() turtle.Keymap { return s.keys }
