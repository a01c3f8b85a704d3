package turtle

import (
	"math"
	"testing"

	"github.com/matzehuels/lturtle/pkg/lsystem"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func newAt(heading, step, angle float64) *Turtle {
	return New(Config{StepLength: step, TurnAngle: angle, InitialHeading: heading})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.StepLength != 20 || cfg.TurnAngle != 45 || cfg.InitialHeading != 270 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestMoveDraw(t *testing.T) {
	tt := newAt(0, 10, 45)

	seg, ok := tt.Dispatch(MoveDraw)
	if !ok {
		t.Fatal("MoveDraw should emit a segment")
	}
	if !nearPoint(seg.From, Point{0, 0}) || !nearPoint(seg.To, Point{10, 0}) {
		t.Errorf("segment = %+v, want (0,0)->(10,0)", seg)
	}
	if !nearPoint(tt.State().Position, Point{10, 0}) {
		t.Errorf("position = %+v, want (10,0)", tt.State().Position)
	}
	if tt.State().Heading != 0 {
		t.Errorf("heading changed to %v", tt.State().Heading)
	}
}

func TestMoveUpIsNegativeY(t *testing.T) {
	tt := New(DefaultConfig())
	seg, _ := tt.Dispatch(MoveDraw)
	if !nearPoint(seg.To, Point{0, -20}) {
		t.Errorf("moving up should decrease y, got %+v", seg.To)
	}
}

func TestMoveBlank(t *testing.T) {
	tt := newAt(90, 5, 45)
	if _, ok := tt.Dispatch(MoveBlank); ok {
		t.Error("MoveBlank should not emit a segment")
	}
	if !nearPoint(tt.State().Position, Point{0, 5}) {
		t.Errorf("position = %+v, want (0,5)", tt.State().Position)
	}
}

func TestTurnsAreReversible(t *testing.T) {
	tt := newAt(0, 10, 45)

	tt.Dispatch(TurnLeft)
	if tt.State().Heading != 45 {
		t.Errorf("heading after TurnLeft = %v, want 45", tt.State().Heading)
	}
	tt.Dispatch(TurnRight)
	if !near(tt.State().Heading, 0) {
		t.Errorf("heading after TurnRight = %v, want 0", tt.State().Heading)
	}
}

func TestHeadingAccumulates(t *testing.T) {
	tt := newAt(0, 10, 45)
	for i := 0; i < 16; i++ {
		tt.Dispatch(TurnLeft)
	}
	h := tt.State().Heading
	if h != 720 {
		t.Errorf("heading should not be normalized, got %v", h)
	}
	if !HeadingEqual(h, 0, eps) {
		t.Errorf("HeadingEqual(%v, 0) = false", h)
	}
}

func TestFaceCommandsAreAbsolute(t *testing.T) {
	tests := []struct {
		cmd  Command
		want float64
	}{
		{FaceUp, HeadingUp},
		{FaceDown, HeadingDown},
		{FaceLeft, HeadingLeft},
		{FaceRight, HeadingRight},
	}

	for _, tc := range tests {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			for _, start := range []float64{0, 33, -450, 1e6} {
				tt := newAt(start, 10, 45)
				if _, ok := tt.Dispatch(tc.cmd); ok {
					t.Error("face commands do not draw")
				}
				if tt.State().Heading != tc.want {
					t.Errorf("from %v: heading = %v, want %v", start, tt.State().Heading, tc.want)
				}
			}
		})
	}
}

func TestFaceRightPointsAlongX(t *testing.T) {
	tt := newAt(123, 10, 45)
	tt.Dispatch(FaceRight)
	seg, _ := tt.Dispatch(MoveDraw)
	if !nearPoint(seg.To, Point{10, 0}) {
		t.Errorf("face-right move = %+v, want (10,0)", seg.To)
	}
}

func TestPushPop(t *testing.T) {
	tt := newAt(0, 10, 90)

	tt.Dispatch(Push)
	tt.Dispatch(MoveDraw)
	tt.Dispatch(TurnLeft)
	if tt.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", tt.Depth())
	}

	tt.Dispatch(Pop)
	st := tt.State()
	if !nearPoint(st.Position, Point{0, 0}) || st.Heading != 0 {
		t.Errorf("Pop restored %+v, want origin heading 0", st)
	}
	if tt.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", tt.Depth())
	}
}

func TestPopEmptyIsNoop(t *testing.T) {
	tt := newAt(0, 10, 90)
	tt.Dispatch(MoveBlank)
	before := tt.State()
	tt.Dispatch(Pop)
	if tt.State() != before {
		t.Errorf("Pop on empty stack changed state: %+v -> %+v", before, tt.State())
	}
}

func TestUnknownCommandIsNoop(t *testing.T) {
	tt := newAt(10, 10, 90)
	before := tt.State()
	for _, c := range []Command{Noop, Command(99), Command(-1)} {
		if _, ok := tt.Dispatch(c); ok {
			t.Errorf("%v should not draw", c)
		}
	}
	if tt.State() != before {
		t.Error("unknown commands should not change state")
	}
}

func TestReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Origin = Point{400, 300}
	tt := New(cfg)
	tt.Dispatch(Push)
	tt.Dispatch(MoveDraw)
	tt.Dispatch(TurnLeft)
	tt.Reset()

	if tt.State() != (State{Position: Point{400, 300}, Heading: HeadingUp}) {
		t.Errorf("Reset() state = %+v", tt.State())
	}
	if tt.Depth() != 0 {
		t.Error("Reset() should clear saved states")
	}
}

func TestInterpretDefaultSymbols(t *testing.T) {
	tt := newAt(0, 10, 90)
	segs := tt.Interpret(lsystem.StringSymbols("F+F+F+F"), DefaultSymbols())
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}
	if !nearPoint(tt.State().Position, Point{0, 0}) {
		t.Errorf("square should close, ended at %+v", tt.State().Position)
	}
}

func TestInterpretIgnoresUnmappedSymbols(t *testing.T) {
	tt := newAt(0, 10, 90)
	segs := tt.Interpret(lsystem.StringSymbols("ABXFf[]"), DefaultSymbols())
	if len(segs) != 1 {
		t.Errorf("got %d segments, want 1", len(segs))
	}
	if tt.Depth() != 0 {
		t.Error("brackets are inert under DefaultSymbols")
	}
}

func TestInterpretBranching(t *testing.T) {
	tt := newAt(0, 10, 90)
	segs := tt.Interpret(lsystem.StringSymbols("F[+F]f"), BranchingSymbols())
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if !nearPoint(tt.State().Position, Point{20, 0}) {
		t.Errorf("position = %+v, want (20,0)", tt.State().Position)
	}
}

func TestInterpretExpander(t *testing.T) {
	rules := lsystem.Rules{
		{Match: 'A', Replacement: "-BF+AFA+FB-"},
		{Match: 'B', Replacement: "+AF-BFB-FA+"},
	}
	a := New(Config{StepLength: 1, TurnAngle: 90})
	b := New(Config{StepLength: 1, TurnAngle: 90})

	lazy := a.Interpret(lsystem.Symbols("A", rules, 3), DefaultSymbols())
	eager := b.Interpret(lsystem.StringSymbols(lsystem.Generate("A", rules, 3)), DefaultSymbols())

	if len(lazy) != len(eager) || len(lazy) != 63 {
		t.Fatalf("lazy=%d eager=%d, want 63", len(lazy), len(eager))
	}
	for i := range lazy {
		if lazy[i] != eager[i] {
			t.Fatalf("segment %d differs", i)
		}
	}
}

func TestWalkStops(t *testing.T) {
	tt := newAt(0, 1, 90)
	n := 0
	tt.Walk(lsystem.StringSymbols("FFFFF"), DefaultSymbols(), func(Segment) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("Walk visited %d segments, want 2", n)
	}
}
