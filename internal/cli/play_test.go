package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lturtle/pkg/config"
	"github.com/matzehuels/lturtle/pkg/sketch"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

func newTestPlayModel(t *testing.T, cfg config.Config) playModel {
	t.Helper()
	sk, err := sketch.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return newPlayModel(sk, 0)
}

func press(m playModel, keys ...tea.KeyMsg) playModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(playModel)
	}
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPlayTurtleKeys(t *testing.T) {
	m := newTestPlayModel(t, config.Default())

	m = press(m, runeKey('F'), runeKey('f'), runeKey('X'), runeKey('F'), runeKey('G'))
	if len(m.trail) != 2 {
		t.Fatalf("trail has %d segments, want 2", len(m.trail))
	}
	if got := m.sketch.State().Heading; got != 225 {
		t.Errorf("heading = %v, want 225", got)
	}
}

func TestPlayTriggerAndStep(t *testing.T) {
	cfg := config.Default()
	cfg.Grammar.Axiom = "F"
	cfg.Grammar.Rules = []string{"F=F+F"}
	cfg.Grammar.Generations = 1
	m := newTestPlayModel(t, cfg)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.sketch.Generation().Current(); got != "F+F" {
		t.Fatalf("after trigger = %q, want F+F", got)
	}
	if !strings.Contains(m.status, "3 symbols") {
		t.Errorf("status = %q", m.status)
	}

	// Trigger moved the cursor to 1, so the next symbols are + and F.
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	m = press(m, space, space)
	if len(m.trail) != 1 {
		t.Errorf("trail has %d segments, want 1", len(m.trail))
	}
}

func TestPlayTriggerTooLong(t *testing.T) {
	cfg := config.Default()
	cfg.Grammar.MaxLength = 20
	m := newTestPlayModel(t, cfg)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.sketch.Generation().Current() != "A" {
		t.Errorf("string changed to %q despite the cap", m.sketch.Generation().Current())
	}
	if !strings.Contains(m.status, "exceed 20 bytes") {
		t.Errorf("status = %q", m.status)
	}
}

func TestPlayReset(t *testing.T) {
	m := newTestPlayModel(t, config.Default())
	start := m.sketch.State()

	m = press(m, runeKey('F'), runeKey('F'), runeKey('r'))
	if len(m.trail) != 0 || m.sketch.State() != start {
		t.Errorf("reset left trail %d, state %+v", len(m.trail), m.sketch.State())
	}
}

func TestPlayQuit(t *testing.T) {
	m := newTestPlayModel(t, config.Default())
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestPlayView(t *testing.T) {
	m := newTestPlayModel(t, config.Default())
	m = press(m, runeKey('F'))

	view := m.View()
	if !strings.Contains(view, "↑") {
		t.Error("view should show the turtle facing up")
	}
	if !strings.Contains(view, "1 segments") {
		t.Error("view should count segments")
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '→'},
		{90, '↓'},
		{180, '←'},
		{270, '↑'},
		{360, '→'},
		{-90, '↑'},
		{40, '↘'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.heading); got != tt.want {
			t.Errorf("headingGlyph(%v) = %c, want %c", tt.heading, got, tt.want)
		}
	}
}

func TestPlotSegments(t *testing.T) {
	segs := []turtle.Segment{{From: turtle.Point{X: 0, Y: 5}, To: turtle.Point{X: 100, Y: 5}}}
	grid := plotSegments(segs, 100, 100, 10, 10)

	if got := string(grid[0]); got != strings.Repeat("•", 10) {
		t.Errorf("row 0 = %q, want a full line", got)
	}
	for _, row := range grid[1:] {
		if strings.TrimSpace(string(row)) != "" {
			t.Errorf("unexpected ink in row %q", string(row))
		}
	}
}

func TestGridCellClips(t *testing.T) {
	if _, _, ok := gridCell(turtle.Point{X: -1, Y: 5}, 100, 100, 10, 10); ok {
		t.Error("point left of the canvas should be clipped")
	}
	col, row, ok := gridCell(turtle.Point{X: 99.9, Y: 0}, 100, 100, 10, 10)
	if !ok || col != 9 || row != 0 {
		t.Errorf("gridCell = %d, %d, %v; want 9, 0, true", col, row, ok)
	}
}
