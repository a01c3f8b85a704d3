package lsystem

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func collect(e *Expander) string {
	var b strings.Builder
	for sym := range e.Symbols() {
		b.WriteRune(sym)
	}
	return b.String()
}

func TestExpanderInvalidUTF8(t *testing.T) {
	rules := Rules{{Match: '\uFFFD', Replacement: "X"}, {Match: 'A', Replacement: "AB"}}
	var got []rune
	for r := range Symbols("A\xff", rules, 2) {
		got = append(got, r)
	}
	want := []rune{'A', 'B', 'B', utf8.RuneError}
	if string(got) != string(want) {
		t.Errorf("symbols = %q, want %q", got, want)
	}
}

func TestExpanderMatchesGenerate(t *testing.T) {
	tests := []struct {
		name  string
		axiom string
		rules Rules
	}{
		{"hilbert", "A", hilbert},
		{"unmatched", "F+F", hilbert},
		{"erasing", "AXB", Rules{{Match: 'X', Replacement: ""}, {Match: 'A', Replacement: "XAX"}}},
		{"empty axiom", "", hilbert},
		{"multibyte", "α", Rules{{Match: 'α', Replacement: "αβα"}}},
	}

	for _, tt := range tests {
		for n := 0; n < 5; n++ {
			t.Run(fmt.Sprintf("%s/%d", tt.name, n), func(t *testing.T) {
				got := collect(NewExpander(tt.axiom, tt.rules, n))
				want := Generate(tt.axiom, tt.rules, n)
				if got != want {
					t.Errorf("expander = %q, want %q", got, want)
				}
			})
		}
	}
}

func TestExpanderEarlyStop(t *testing.T) {
	e := NewExpander("A", hilbert, 3)
	n := 0
	for range e.Symbols() {
		n++
		if n == 5 {
			break
		}
	}
	rest := collect(e)
	full := Generate("A", hilbert, 3)
	if full[5:] != rest {
		t.Error("expander should resume after an early break")
	}
}

func TestStringSymbols(t *testing.T) {
	var b strings.Builder
	for sym := range StringSymbols("F+α") {
		b.WriteRune(sym)
	}
	if b.String() != "F+α" {
		t.Errorf("StringSymbols = %q", b.String())
	}
}

func ExampleGenerate() {
	rules := Rules{
		{Match: 'A', Replacement: "-BF+AFA+FB-"},
		{Match: 'B', Replacement: "+AF-BFB-FA+"},
	}
	fmt.Println(Generate("A", rules, 0))
	fmt.Println(Generate("A", rules, 1))
	// Output:
	// A
	// -BF+AFA+FB-
}

func ExampleExpander() {
	e := NewExpander("F", Rules{{Match: 'F', Replacement: "F+F"}}, 2)
	for sym := range e.Symbols() {
		fmt.Print(string(sym))
	}
	fmt.Println()
	// Output:
	// F+F+F+F
}
