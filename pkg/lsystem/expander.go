package lsystem

import (
	"iter"
	"unicode/utf8"
)

// Expander streams the symbols of Generate(axiom, rules, generations) one at
// a time. It expands depth-first, so memory is bounded by generations times
// the longest replacement rather than by the output length.
//
// An Expander is single-use and not safe for concurrent use.
type Expander struct {
	rules       Rules
	generations int
	stack       []frame
}

type frame struct {
	s     string
	pos   int
	depth int
}

// NewExpander returns an Expander positioned at the first symbol.
func NewExpander(axiom string, rules Rules, generations int) *Expander {
	if generations < 0 {
		generations = 0
	}
	return &Expander{
		rules:       rules,
		generations: generations,
		stack:       []frame{{s: axiom}},
	}
}

// Next returns the next symbol of the final generation, or false when the
// stream is exhausted. A byte that is not valid UTF-8 is returned as
// utf8.RuneError and is never expanded.
func (e *Expander) Next() (rune, bool) {
	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]
		if top.pos >= len(top.s) {
			e.stack = e.stack[:len(e.stack)-1]
			continue
		}
		sym, size := utf8.DecodeRuneInString(top.s[top.pos:])
		top.pos += size
		if top.depth < e.generations {
			if rep, ok := lookup(e.rules, sym, size); ok {
				e.stack = append(e.stack, frame{s: rep, depth: top.depth + 1})
				continue
			}
		}
		// Unmatched symbols are fixed points of every remaining pass.
		return sym, true
	}
	return 0, false
}

// Symbols returns the remaining symbols as an iterator.
func (e *Expander) Symbols() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for {
			sym, ok := e.Next()
			if !ok || !yield(sym) {
				return
			}
		}
	}
}

// Symbols is a convenience for NewExpander(axiom, rules, generations).Symbols().
func Symbols(axiom string, rules Rules, generations int) iter.Seq[rune] {
	return NewExpander(axiom, rules, generations).Symbols()
}

// StringSymbols iterates over the symbols of an already generated string.
func StringSymbols(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, c := range s {
			if !yield(c) {
				return
			}
		}
	}
}
