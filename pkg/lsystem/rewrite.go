package lsystem

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ErrTooLong is returned by [GenerateContext] when the next rewrite pass
// would exceed the configured length limit.
var ErrTooLong = stderrors.New("generation exceeds length limit")

// Rewrite performs one rewrite pass over input. Each symbol is replaced by the
// replacement of the first matching rule, or copied unchanged when no rule
// matches. Bytes that are not valid UTF-8 match no rule and are copied as
// they are. Neither input nor rules are modified.
func Rewrite(input string, rules Rules) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(OutputLen(input, rules))
	for i := 0; i < len(input); {
		sym, size := utf8.DecodeRuneInString(input[i:])
		if rep, ok := lookup(rules, sym, size); ok {
			b.WriteString(rep)
		} else {
			b.WriteString(input[i : i+size])
		}
		i += size
	}
	return b.String()
}

// OutputLen returns the byte length of Rewrite(input, rules) without
// building it.
func OutputLen(input string, rules Rules) int {
	n := 0
	for i := 0; i < len(input); {
		sym, size := utf8.DecodeRuneInString(input[i:])
		if rep, ok := lookup(rules, sym, size); ok {
			n += len(rep)
		} else {
			n += size
		}
		i += size
	}
	return n
}

// lookup is rules.Lookup for a decoded symbol. An invalid byte (RuneError
// of size 1) never matches.
func lookup(rules Rules, sym rune, size int) (string, bool) {
	if invalidByte(sym, size) {
		return "", false
	}
	return rules.Lookup(sym)
}

func invalidByte(sym rune, size int) bool {
	return sym == utf8.RuneError && size == 1
}

// Generate applies generations rewrite passes starting from axiom and returns
// the final string. Zero (or negative) generations return the axiom itself.
//
// Generate is a pure function of its arguments.
func Generate(axiom string, rules Rules, generations int) string {
	s := axiom
	for i := 0; i < generations; i++ {
		s = Rewrite(s, rules)
	}
	return s
}

// GenerateContext is [Generate] with cancellation between passes and an
// optional length limit in bytes. When limit > 0 and a pass would produce
// more than limit bytes, GenerateContext stops and returns the last string
// that fit along with an error wrapping [ErrTooLong].
func GenerateContext(ctx context.Context, axiom string, rules Rules, generations, limit int) (string, error) {
	s := axiom
	for i := 0; i < generations; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		if limit > 0 {
			if n := OutputLen(s, rules); n > limit {
				return s, fmt.Errorf("pass %d needs %d symbols, limit is %d: %w", i+1, n, limit, ErrTooLong)
			}
		}
		s = Rewrite(s, rules)
	}
	return s, nil
}

// Length returns the byte length of Generate(axiom, rules, generations)
// without building any intermediate string. It runs in time proportional to
// generations times the total size of axiom and rules, and saturates at
// math.MaxInt.
func Length(axiom string, rules Rules, generations int) int {
	if generations <= 0 {
		return len(axiom)
	}
	// size[c] is the length that symbol c expands to after g passes.
	size := make(map[rune]int)
	alphabet := alphabetOf(axiom, rules)
	for _, c := range alphabet {
		size[c] = utf8.RuneLen(c)
	}
	for g := 0; g < generations; g++ {
		next := make(map[rune]int, len(size))
		for _, c := range alphabet {
			rep, ok := rules.Lookup(c)
			if !ok {
				next[c] = size[c]
				continue
			}
			next[c] = sumSizes(rep, size)
		}
		size = next
	}
	return sumSizes(axiom, size)
}

// sumSizes adds up size for every symbol of s. Invalid bytes are fixed points
// of one byte each.
func sumSizes(s string, size map[rune]int) int {
	n := 0
	for i := 0; i < len(s); {
		c, w := utf8.DecodeRuneInString(s[i:])
		if invalidByte(c, w) {
			n = satAdd(n, 1)
		} else {
			n = satAdd(n, size[c])
		}
		i += w
	}
	return n
}

// satAdd adds non-negative ints, clamping at math.MaxInt.
func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func alphabetOf(axiom string, rules Rules) []rune {
	seen := make(map[rune]bool)
	var out []rune
	add := func(s string) {
		for i := 0; i < len(s); {
			c, w := utf8.DecodeRuneInString(s[i:])
			i += w
			if invalidByte(c, w) || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	add(axiom)
	for _, r := range rules {
		add(string(r.Match))
		add(r.Replacement)
	}
	return out
}

// Histogram counts the occurrences of each symbol in s.
func Histogram(s string) map[rune]int {
	h := make(map[rune]int)
	for _, c := range s {
		h[c]++
	}
	return h
}
