package lsystem

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/lturtle/pkg/errors"
)

// Rule is a single production: every occurrence of Match is replaced by
// Replacement.
type Rule struct {
	Match       rune
	Replacement string
}

type jsonRule struct {
	Match       string `json:"match"`
	Replacement string `json:"replacement"`
}

// MarshalJSON encodes the rule with its match symbol as a one-symbol string.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRule{Match: string(r.Match), Replacement: r.Replacement})
}

// UnmarshalJSON decodes a rule and enforces the single-symbol match.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var jr jsonRule
	if err := json.Unmarshal(data, &jr); err != nil {
		return err
	}
	if utf8.RuneCountInString(jr.Match) != 1 {
		return errors.New(errors.ErrCodeInvalidRule, "match must be a single symbol, got %q", jr.Match)
	}
	r.Match, _ = utf8.DecodeRuneInString(jr.Match)
	r.Replacement = jr.Replacement
	return nil
}

// String formats the rule as "A=-BF+AFA+FB-", the form accepted by [ParseRule].
func (r Rule) String() string {
	return string(r.Match) + "=" + r.Replacement
}

// Rules is an ordered rule set. Order matters: the first rule whose Match
// equals a symbol is the one applied.
type Rules []Rule

// Lookup returns the replacement of the first rule matching sym.
func (rs Rules) Lookup(sym rune) (string, bool) {
	for _, r := range rs {
		if r.Match == sym {
			return r.Replacement, true
		}
	}
	return "", false
}

// Shadowed returns the indices of rules that can never fire because an
// earlier rule has the same match symbol.
func (rs Rules) Shadowed() []int {
	var out []int
	seen := make(map[rune]bool, len(rs))
	for i, r := range rs {
		if seen[r.Match] {
			out = append(out, i)
			continue
		}
		seen[r.Match] = true
	}
	return out
}

// Symbols returns the distinct match symbols in rule order.
func (rs Rules) Symbols() []rune {
	var out []rune
	seen := make(map[rune]bool, len(rs))
	for _, r := range rs {
		if !seen[r.Match] {
			seen[r.Match] = true
			out = append(out, r.Match)
		}
	}
	return out
}

// Validate checks the construction-time preconditions of the rewriter: every
// rule matches a single, valid, non-zero symbol.
func (rs Rules) Validate() error {
	for i, r := range rs {
		if r.Match == 0 || r.Match == utf8.RuneError {
			return errors.New(errors.ErrCodeInvalidRule, "rule %d: missing or invalid match symbol", i)
		}
		if !utf8.ValidString(r.Replacement) {
			return errors.New(errors.ErrCodeInvalidRule, "rule %d (%c): replacement is not valid UTF-8", i, r.Match)
		}
	}
	return nil
}

// ParseRule parses "A=-BF+AFA+FB-" or "A -> -BF+AFA+FB-". The left-hand side
// must be exactly one symbol; surrounding spaces are ignored. An empty
// replacement is allowed and erases the symbol.
func ParseRule(s string) (Rule, error) {
	sep := "="
	if a := strings.Index(s, "->"); a >= 0 {
		if e := strings.Index(s, "="); e < 0 || a < e {
			sep = "->"
		}
	}
	lhs, rhs, ok := strings.Cut(s, sep)
	if !ok {
		return Rule{}, errors.New(errors.ErrCodeInvalidRule, "rule %q: expected SYMBOL=REPLACEMENT", s)
	}
	lhs = strings.TrimSpace(lhs)
	if utf8.RuneCountInString(lhs) != 1 {
		return Rule{}, errors.New(errors.ErrCodeInvalidRule, "rule %q: match must be a single symbol, got %q", s, lhs)
	}
	m, _ := utf8.DecodeRuneInString(lhs)
	r := Rule{Match: m, Replacement: strings.TrimSpace(rhs)}
	if err := (Rules{r}).Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// ParseRules parses each entry with [ParseRule], preserving order.
func ParseRules(specs []string) (Rules, error) {
	rs := make(Rules, 0, len(specs))
	for _, s := range specs {
		r, err := ParseRule(s)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}

// MustParseRules is like [ParseRules] but panics on error. It is intended for
// package-level rule tables.
func MustParseRules(specs ...string) Rules {
	rs, err := ParseRules(specs)
	if err != nil {
		panic(fmt.Sprintf("lsystem: %v", err))
	}
	return rs
}
