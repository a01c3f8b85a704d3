package turtle

import (
	"iter"
	"math"
)

// Default configuration, matching the classic sketch.
const (
	DefaultStepLength = 20.0
	DefaultTurnAngle  = 45.0
)

// Config holds the constants a turtle is created with.
type Config struct {
	// StepLength is the distance covered by MoveDraw and MoveBlank.
	StepLength float64 `json:"step_length" toml:"step"`
	// TurnAngle is the angle in degrees applied by TurnLeft and TurnRight.
	TurnAngle float64 `json:"turn_angle" toml:"angle"`
	// InitialHeading is the heading in degrees after New and Reset.
	InitialHeading float64 `json:"initial_heading" toml:"heading"`
	// Origin is the position after New and Reset.
	Origin Point `json:"origin" toml:"-"`
}

// DefaultConfig returns a 20 unit step, a 45 degree turn, facing up, at the
// origin.
func DefaultConfig() Config {
	return Config{
		StepLength:     DefaultStepLength,
		TurnAngle:      DefaultTurnAngle,
		InitialHeading: HeadingUp,
	}
}

// State is a turtle's position and heading.
type State struct {
	Position Point   `json:"position"`
	Heading  float64 `json:"heading"`
}

// Turtle interprets commands against a single owned State. It is not safe for
// concurrent use.
type Turtle struct {
	cfg   Config
	state State
	stack []State
}

// New returns a turtle at cfg.Origin facing cfg.InitialHeading.
func New(cfg Config) *Turtle {
	t := &Turtle{cfg: cfg}
	t.Reset()
	return t
}

// Config returns the turtle's configuration.
func (t *Turtle) Config() Config { return t.cfg }

// State returns a copy of the current state.
func (t *Turtle) State() State { return t.state }

// SetState replaces the current state. The saved-state stack is kept.
func (t *Turtle) SetState(s State) { t.state = s }

// Depth returns the number of saved states.
func (t *Turtle) Depth() int { return len(t.stack) }

// Reset returns the turtle to its origin and initial heading and drops any
// saved states.
func (t *Turtle) Reset() {
	t.state = State{Position: t.cfg.Origin, Heading: t.cfg.InitialHeading}
	t.stack = t.stack[:0]
}

// Dispatch applies cmd. For MoveDraw it returns the segment from the old to
// the new position and true; every other command returns false. Unknown
// commands leave the state unchanged.
func (t *Turtle) Dispatch(cmd Command) (Segment, bool) {
	switch cmd {
	case MoveDraw:
		from := t.state.Position
		t.state.Position = t.ahead()
		return Segment{From: from, To: t.state.Position}, true
	case MoveBlank:
		t.state.Position = t.ahead()
	case TurnLeft:
		t.state.Heading += t.cfg.TurnAngle
	case TurnRight:
		t.state.Heading -= t.cfg.TurnAngle
	case FaceUp:
		t.state.Heading = HeadingUp
	case FaceDown:
		t.state.Heading = HeadingDown
	case FaceLeft:
		t.state.Heading = HeadingLeft
	case FaceRight:
		t.state.Heading = HeadingRight
	case Push:
		t.stack = append(t.stack, t.state)
	case Pop:
		if n := len(t.stack); n > 0 {
			t.state = t.stack[n-1]
			t.stack = t.stack[:n-1]
		}
	}
	return Segment{}, false
}

// ahead is the point one step along the current heading.
func (t *Turtle) ahead() Point {
	rad := Radians(t.state.Heading)
	return Point{
		X: t.state.Position.X + t.cfg.StepLength*math.Cos(rad),
		Y: t.state.Position.Y + t.cfg.StepLength*math.Sin(rad),
	}
}

// Interpret dispatches the command for every symbol of seq that symbols maps,
// skipping the rest, and returns the segments drawn in order.
func (t *Turtle) Interpret(seq iter.Seq[rune], symbols SymbolMap) []Segment {
	var segs []Segment
	for sym := range seq {
		cmd, ok := symbols[sym]
		if !ok {
			continue
		}
		if seg, drew := t.Dispatch(cmd); drew {
			segs = append(segs, seg)
		}
	}
	return segs
}

// Walk is like Interpret but calls fn for each segment instead of collecting
// them. Iteration stops early when fn returns false.
func (t *Turtle) Walk(seq iter.Seq[rune], symbols SymbolMap, fn func(Segment) bool) {
	for sym := range seq {
		cmd, ok := symbols[sym]
		if !ok {
			continue
		}
		if seg, drew := t.Dispatch(cmd); drew && !fn(seg) {
			return
		}
	}
}
