package pos

import "fmt"

// TabWidth is the tab stop used when advancing over a '\t'. Columns move to
// the next multiple of TabWidth plus one.
const TabWidth = 8

// Position represents a location in the source input. Values are immutable;
// advancing derives a new Position rather than mutating in place.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Initial returns the position of the first element of an input.
func Initial() Position {
	return Position{Line: 1, Column: 1, Offset: 0}
}

// Advance returns the position following p after consuming r. A newline
// resets the column and increments the line, a tab moves the column to the
// next tab stop, anything else moves the column by one. The raw offset
// always moves by one element.
func (p Position) Advance(r rune) Position {
	next := Position{Line: p.Line, Column: p.Column, Offset: p.Offset + 1}
	switch r {
	case '\n':
		next.Line = p.Line + 1
		next.Column = 1
	case '\t':
		next.Column = p.Column + TabWidth - ((p.Column - 1) % TabWidth)
	default:
		next.Column = p.Column + 1
	}
	return next
}

// AdvanceString folds Advance over every rune of s.
func (p Position) AdvanceString(s string) Position {
	for _, r := range s {
		p = p.Advance(r)
	}
	return p
}

// Less reports whether p comes strictly before other in the input. Positions
// from the same parse share one input, so the raw offset is authoritative.
func (p Position) Less(other Position) bool {
	return p.Offset < other.Offset
}

// Equal reports whether both positions denote the same input offset.
func (p Position) Equal(other Position) bool {
	return p.Offset == other.Offset
}

// String returns the human-facing rendering used in parse errors.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}
