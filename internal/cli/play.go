package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lturtle/pkg/lsystem"
	"github.com/matzehuels/lturtle/pkg/sketch"
	"github.com/matzehuels/lturtle/pkg/turtle"
)

const (
	defaultPlayInterval = 40 * time.Millisecond
	maxTrail            = 20000 // segments kept on screen
	playChromeRows      = 5     // title, help, status and border
)

// Play styles
var (
	playInkStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	playTurtleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	playFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	playHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// playCommand starts the interactive turtle.
func (c *CLI) playCommand() *cobra.Command {
	var (
		grammar  grammarFlags
		render   renderFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Drive the turtle and the grammar from the keyboard",
		Long: `Drive the turtle from the keyboard in the terminal.

Turtle keys act immediately:

  F draw forward     f move forward
  C turn left        X turn right
  W face up          S face down
  A face left        D face right
  [ save state       ] restore state

Grammar keys:

  enter   apply another round of rewriting to the current string
  space   draw the symbol under the cursor
  p       draw continuously
  r       reset the turtle and the grammar
  q, esc  quit

The drawing area is the configured canvas scaled to the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveGrammar(cmd, &grammar, "")
			if err != nil {
				return err
			}
			render.apply(cmd.Flags(), &cfg)
			sk, err := sketch.New(cfg)
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), newPlayModel(sk, interval))
		},
	}

	grammar.register(cmd.Flags())
	render.register(cmd.Flags())
	cmd.Flags().DurationVar(&interval, "interval", defaultPlayInterval, "delay between steps while drawing continuously")

	return cmd
}

func runPlay(ctx context.Context, m playModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if fm, ok := final.(playModel); ok {
		gen := fm.sketch.Generation()
		printInfo("Drew %d segments over %d rewriting passes", len(fm.trail), gen.Passes())
	}
	return nil
}

// =============================================================================
// playModel - Interactive turtle
// =============================================================================

type playTickMsg struct{}

// playModel is the bubbletea model for the play command.
type playModel struct {
	sketch   *sketch.Sketch
	trail    []turtle.Segment
	auto     bool
	interval time.Duration
	status   string
	cols     int
	rows     int
}

func newPlayModel(sk *sketch.Sketch, interval time.Duration) playModel {
	if interval <= 0 {
		interval = defaultPlayInterval
	}
	return playModel{sketch: sk, interval: interval, cols: 78, rows: 20}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return playTickMsg{} })
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case playTickMsg:
		if !m.auto {
			return m, nil
		}
		m.step()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 10)
		m.rows = max(msg.Height-playChromeRows, 5)
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.trigger()
		return m, nil
	case " ":
		m.step()
		return m, nil
	case "p":
		m.auto = !m.auto
		if m.auto {
			return m, m.tick()
		}
		return m, nil
	case "r":
		m.sketch.Reset()
		m.trail = nil
		m.auto = false
		m.status = "reset"
		return m, nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if seg, ok := m.sketch.Key(msg.Runes[0]); ok {
			m.draw(seg)
		}
	}
	return m, nil
}

func (m *playModel) trigger() {
	err := m.sketch.Trigger()
	gen := m.sketch.Generation()
	switch {
	case stderrors.Is(err, lsystem.ErrTooLong):
		m.status = fmt.Sprintf("string would exceed %d bytes; kept %d", gen.Limit, gen.Len())
	case err != nil:
		m.status = err.Error()
	default:
		m.status = fmt.Sprintf("rewrote to %d symbols", gen.Len())
	}
}

func (m *playModel) step() {
	if seg, ok := m.sketch.Step(); ok {
		m.draw(seg)
	}
}

func (m *playModel) draw(seg turtle.Segment) {
	m.trail = append(m.trail, seg)
	if len(m.trail) > maxTrail {
		m.trail = m.trail[len(m.trail)-maxTrail:]
	}
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("lturtle play"))
	b.WriteString("  ")
	b.WriteString(playHelpStyle.Render("F f C X W S A D [ ]  ⏎ rewrite  ␣ step  p play  r reset  q quit"))
	b.WriteString("\n")

	w, h := m.sketch.Canvas()
	grid := plotSegments(m.trail, w, h, m.cols, m.rows)
	st := m.sketch.State()
	if col, row, ok := gridCell(st.Position, w, h, m.cols, m.rows); ok {
		grid[row][col] = headingGlyph(st.Heading)
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		var line strings.Builder
		for _, r := range row {
			switch {
			case r == ' ':
				line.WriteRune(r)
			case strings.ContainsRune(turtleGlyphs, r):
				line.WriteString(playTurtleStyle.Render(string(r)))
			default:
				line.WriteString(playInkStyle.Render(string(r)))
			}
		}
		lines[i] = line.String()
	}
	b.WriteString(playFrameStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m playModel) statusLine() string {
	st := m.sketch.State()
	gen := m.sketch.Generation()

	sym := "-"
	if r, ok := gen.Symbol(); ok {
		sym = string(r)
	}
	parts := []string{
		fmt.Sprintf("(%.0f, %.0f)", st.Position.X, st.Position.Y),
		fmt.Sprintf("%.0f°", turtle.NormalizeHeading(st.Heading)),
		fmt.Sprintf("pass %d", gen.Passes()),
		fmt.Sprintf("%d/%d %s", gen.Cursor(), gen.Len(), sym),
		fmt.Sprintf("%d segments", len(m.trail)),
	}
	if m.auto {
		parts = append(parts, StyleSuccess.Render("playing"))
	}
	line := StyleDim.Render(strings.Join(parts, " · "))
	if m.status != "" {
		line += "  " + StyleWarning.Render(m.status)
	}
	return line
}

// =============================================================================
// Terminal raster
// =============================================================================

const turtleGlyphs = "→↘↓↙←↖↑↗"

// headingGlyph picks the arrow closest to heading. Headings grow clockwise
// on screen because y points down.
func headingGlyph(heading float64) rune {
	glyphs := []rune(turtleGlyphs)
	i := int(math.Round(turtle.NormalizeHeading(heading)/45)) % len(glyphs)
	return glyphs[i]
}

// gridCell maps a canvas point to a cell. Points outside the canvas have no
// cell.
func gridCell(p turtle.Point, w, h float64, cols, rows int) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return 0, 0, false
	}
	col = int(p.X / w * float64(cols))
	row = int(p.Y / h * float64(rows))
	return min(col, cols-1), min(row, rows-1), true
}

// plotSegments rasterizes segments drawn on a w by h canvas into a cols by
// rows grid of runes. Lines leaving the canvas are clipped.
func plotSegments(segs []turtle.Segment, w, h float64, cols, rows int) [][]rune {
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	cellW, cellH := w/float64(cols), h/float64(rows)

	for _, s := range segs {
		n := int(math.Ceil(math.Max(
			math.Abs(s.To.X-s.From.X)/cellW,
			math.Abs(s.To.Y-s.From.Y)/cellH,
		)*2)) + 1
		for i := 0; i <= n; i++ {
			t := float64(i) / float64(n)
			p := turtle.Point{
				X: s.From.X + (s.To.X-s.From.X)*t,
				Y: s.From.Y + (s.To.Y-s.From.Y)*t,
			}
			if col, row, ok := gridCell(p, w, h, cols, rows); ok {
				grid[row][col] = '•'
			}
		}
	}
	return grid
}
