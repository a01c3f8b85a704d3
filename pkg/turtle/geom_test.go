package turtle

import "testing"

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-45, 315},
		{765, 45},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeHeading(tt.in); !near(got, tt.want) {
			t.Errorf("NormalizeHeading(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHeadingEqual(t *testing.T) {
	if !HeadingEqual(HeadingRight, 0, eps) {
		t.Error("360 and 0 are the same heading")
	}
	if !HeadingEqual(359.9999999999, 0, 1e-6) {
		t.Error("tolerance should apply across the wrap")
	}
	if HeadingEqual(90, 270, 1) {
		t.Error("opposite headings are not equal")
	}
}

func TestBounds(t *testing.T) {
	if Bounds(nil) != (Rect{}) {
		t.Error("Bounds(nil) should be zero")
	}
	segs := []Segment{
		{From: Point{0, 0}, To: Point{10, -5}},
		{From: Point{10, -5}, To: Point{-3, 7}},
	}
	b := Bounds(segs)
	want := Rect{Min: Point{-3, -5}, Max: Point{10, 7}}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if b.Width() != 13 || b.Height() != 12 {
		t.Errorf("size = %vx%v", b.Width(), b.Height())
	}
}

func TestSegmentLength(t *testing.T) {
	s := Segment{From: Point{0, 0}, To: Point{3, 4}}
	if s.Length() != 5 {
		t.Errorf("Length() = %v, want 5", s.Length())
	}
}

func TestCommandString(t *testing.T) {
	for c := Noop; c <= Pop; c++ {
		got, err := ParseCommand(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCommand(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCommand("fly"); err == nil {
		t.Error("unknown name should fail")
	}
	if Command(42).String() != "command(42)" {
		t.Errorf("unexpected String(): %s", Command(42))
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()
	tests := map[rune]Command{
		'F': MoveDraw, 'f': MoveBlank, 'C': TurnLeft, 'X': TurnRight,
		'W': FaceUp, 'S': FaceDown, 'A': FaceLeft, 'D': FaceRight,
	}
	for key, want := range tests {
		if got, ok := km.Lookup(key); !ok || got != want {
			t.Errorf("key %q = %v, want %v", key, got, want)
		}
	}
	if _, ok := km.Lookup('G'); ok {
		t.Error("G is unbound")
	}
}

func TestSymbolMaps(t *testing.T) {
	d := DefaultSymbols()
	if len(d) != 3 {
		t.Errorf("DefaultSymbols has %d entries, want 3", len(d))
	}
	b := BranchingSymbols()
	if b['['] != Push || b[']'] != Pop || b['f'] != MoveBlank || b['F'] != MoveDraw {
		t.Errorf("BranchingSymbols = %v", b)
	}
	if _, ok := DefaultSymbols()['[']; ok {
		t.Error("BranchingSymbols must not modify DefaultSymbols")
	}
}
