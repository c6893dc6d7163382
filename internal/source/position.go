package source

import "fmt"

// Position is a zero-based (line, character) pair in document coordinates.
// Character counts runes from the start of the line.
type Position struct {
	Line      int
	Character int
}

// Range is a half-open [Start, End) region of a document.
type Range struct {
	Start Position
	End   Position
}

// CaretPosition is a caret in diagram-local coordinates:
// Line is 1-based within the diagram content, Column is 0-based (runes).
type CaretPosition struct {
	Line   int
	Column int
}

// Before reports whether p comes strictly before o in document order.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// BeforeOrEqual reports whether p does not come after o.
func (p Position) BeforeOrEqual(o Position) bool {
	return !o.Before(p)
}

// Translate shifts the position by a line and character delta.
// Negative results are clamped to zero.
func (p Position) Translate(lineDelta, charDelta int) Position {
	p.Line = max(p.Line+lineDelta, 0)
	p.Character = max(p.Character+charDelta, 0)
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

// Contains reports whether pos lies inside r; both ends are inclusive.
func (r Range) Contains(pos Position) bool {
	return r.Start.BeforeOrEqual(pos) && pos.BeforeOrEqual(r.End)
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}
