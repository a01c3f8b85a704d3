package turtle

import "fmt"

// Command is a discrete turtle instruction.
type Command int

const (
	// Noop does nothing. It is the zero value so that unmapped lookups are
	// harmless.
	Noop Command = iota
	// MoveDraw moves one step along the heading and emits a segment.
	MoveDraw
	// MoveBlank moves one step along the heading without drawing.
	MoveBlank
	// TurnLeft adds the turn angle to the heading.
	TurnLeft
	// TurnRight subtracts the turn angle from the heading.
	TurnRight
	FaceUp
	FaceDown
	FaceLeft
	FaceRight
	// Push saves the current state.
	Push
	// Pop restores the most recently saved state.
	Pop
)

var commandNames = map[Command]string{
	Noop:      "noop",
	MoveDraw:  "move-draw",
	MoveBlank: "move-blank",
	TurnLeft:  "turn-left",
	TurnRight: "turn-right",
	FaceUp:    "face-up",
	FaceDown:  "face-down",
	FaceLeft:  "face-left",
	FaceRight: "face-right",
	Push:      "push",
	Pop:       "pop",
}

// String returns the command's kebab-case name.
func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand parses a name produced by [Command.String].
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return Noop, fmt.Errorf("unknown turtle command %q", s)
}

// Absolute headings set by the Face commands.
const (
	HeadingUp    = 270.0
	HeadingDown  = 90.0
	HeadingLeft  = 180.0
	HeadingRight = 360.0
)

// Keymap maps key presses to commands.
type Keymap map[rune]Command

// Lookup returns the command bound to key, or Noop.
func (k Keymap) Lookup(key rune) (Command, bool) {
	c, ok := k[key]
	return c, ok
}

// DefaultKeymap binds the classic turtle keys.
//
//	F  draw forward      f  move forward
//	C  turn left         X  turn right
//	W  face up           S  face down
//	A  face left         D  face right
//	[  save state        ]  restore state
func DefaultKeymap() Keymap {
	return Keymap{
		'F': MoveDraw,
		'f': MoveBlank,
		'C': TurnLeft,
		'X': TurnRight,
		'W': FaceUp,
		'S': FaceDown,
		'A': FaceLeft,
		'D': FaceRight,
		'[': Push,
		']': Pop,
	}
}

// SymbolMap maps L-system symbols to commands. Symbols missing from the map
// are skipped.
type SymbolMap map[rune]Command

// DefaultSymbols is the minimal drawing alphabet: F draws, + turns left and
// - turns right. Every other symbol is inert.
func DefaultSymbols() SymbolMap {
	return SymbolMap{
		'F': MoveDraw,
		'+': TurnLeft,
		'-': TurnRight,
	}
}

// BranchingSymbols extends [DefaultSymbols] with f (move without drawing)
// and the [ and ] branch brackets.
func BranchingSymbols() SymbolMap {
	m := DefaultSymbols()
	m['f'] = MoveBlank
	m['['] = Push
	m[']'] = Pop
	return m
}
