// Package turtle implements a turtle graphics interpreter.
//
// A [Turtle] owns a position and a heading in degrees and responds to
// discrete [Command] values. Moving commands project the configured step
// length along the current heading; turning commands add or subtract the
// configured turn angle; facing commands set an absolute heading.
//
// # Coordinates
//
// Headings follow screen conventions: 0 degrees points along +x and angles
// grow clockwise because +y points down. Up is therefore 270 degrees.
//
// # Heading Policy
//
// Headings are never normalized. Repeated turns accumulate without bound, so
// comparisons should go through [HeadingEqual] and display through
// [NormalizeHeading].
//
// # Branching
//
// [Push] saves the current [State] on a stack and [Pop] restores the most
// recent one. Popping an empty stack leaves the turtle unchanged.
//
// # Driving the Turtle
//
// Interactive drivers translate key presses with a [Keymap]; L-system
// drivers translate generated symbols with a [SymbolMap] and feed them to
// [Turtle.Interpret].
package turtle
