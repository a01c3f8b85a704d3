package lsystem

import (
	"context"
	"unicode/utf8"
)

// Generation is the evolving state of an L-system driven by external
// triggers: the current string, the number of passes applied per trigger,
// and a cursor marking where in the string drawing currently is.
//
// The cursor is independent of rewriting: it survives passes and only wraps
// when it runs past the end of the current string. Cursor and length are
// counted in symbols, not bytes.
//
// A Generation is owned by a single driver and is not safe for concurrent use.
type Generation struct {
	// Axiom is the string Reset returns to.
	Axiom string
	// Generations is the number of rewrite passes applied by each Advance.
	Generations int
	// Limit caps the byte length of Current. Zero means no limit.
	Limit int

	current string
	offsets []int // byte offset of each symbol in current
	cursor  int
	passes  int
}

// NewGeneration returns a Generation whose current string is axiom.
func NewGeneration(axiom string, generations int) *Generation {
	g := &Generation{Axiom: axiom, Generations: generations}
	g.setCurrent(axiom)
	return g
}

// Current returns the string produced by the most recent pass.
func (g *Generation) Current() string { return g.current }

// Len returns the number of symbols in the current string. Each byte that is
// not valid UTF-8 counts as one symbol.
func (g *Generation) Len() int { return len(g.offsets) }

// Cursor returns the symbol index drawing is at.
func (g *Generation) Cursor() int { return g.cursor }

// Passes returns the total number of rewrite passes applied since the last
// reset.
func (g *Generation) Passes() int { return g.passes }

// Advance applies Generations rewrite passes to the current string, replacing
// it wholesale, then steps the cursor. If the passes would exceed Limit, the
// current string is left untouched and an error wrapping [ErrTooLong] is
// returned; the cursor still steps.
func (g *Generation) Advance(ctx context.Context, rules Rules) error {
	defer g.StepCursor()

	next, err := GenerateContext(ctx, g.current, rules, g.Generations, g.Limit)
	if err != nil {
		return err
	}
	g.setCurrent(next)
	g.passes += g.Generations
	return nil
}

// Symbol returns the symbol under the cursor, or false when the current
// string is empty.
func (g *Generation) Symbol() (rune, bool) {
	if g.cursor < 0 || g.cursor >= len(g.offsets) {
		return utf8.RuneError, false
	}
	sym, _ := utf8.DecodeRuneInString(g.current[g.offsets[g.cursor]:])
	return sym, true
}

// StepCursor moves the cursor forward one symbol, wrapping to 0 when it
// passes the last index.
func (g *Generation) StepCursor() {
	g.cursor++
	if g.cursor > len(g.offsets)-1 {
		g.cursor = 0
	}
}

// Reset restores the axiom and rewinds the cursor.
func (g *Generation) Reset() {
	g.setCurrent(g.Axiom)
	g.cursor = 0
	g.passes = 0
}

func (g *Generation) setCurrent(s string) {
	g.current = s
	g.offsets = g.offsets[:0]
	for i := 0; i < len(s); {
		_, w := utf8.DecodeRuneInString(s[i:])
		g.offsets = append(g.offsets, i)
		i += w
	}
}
