package source

import (
	"unicode/utf8"
)

// lineStart returns the byte offset at which the zero-based line begins.
func (d *Document) lineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line > len(d.LineIdx) {
		return len(d.Text)
	}
	return int(d.LineIdx[line-1]) + 1
}

// lineEnd returns the byte offset of the line terminator (or end of text).
func (d *Document) lineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(d.LineIdx) {
		return len(d.Text)
	}
	return int(d.LineIdx[line])
}

// Line returns the text of the zero-based line without its terminator.
func (d *Document) Line(line int) string {
	if line < 0 || line >= d.LineCount() {
		return ""
	}
	return d.Text[d.lineStart(line):d.lineEnd(line)]
}

// OffsetAt converts a position into a byte offset. Positions past the end of a
// line clamp to the line end, lines past the end clamp to the text end.
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= d.LineCount() {
		return len(d.Text)
	}
	off := d.lineStart(pos.Line)
	end := d.lineEnd(pos.Line)
	for n := 0; n < pos.Character && off < end; n++ {
		_, size := utf8.DecodeRuneInString(d.Text[off:end])
		off += size
	}
	return off
}

// PositionAt converts a byte offset into a position.
func (d *Document) PositionAt(offset int) Position {
	offset = min(max(offset, 0), len(d.Text))

	// бинпоиск: количество '\n' строго до offset
	lo, hi := 0, len(d.LineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if int(d.LineIdx[mid]) < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo
	start := d.lineStart(line)
	return Position{Line: line, Character: utf8.RuneCountInString(d.Text[start:offset])}
}

// Slice returns the text covered by r.
func (d *Document) Slice(r Range) string {
	start, end := d.OffsetAt(r.Start), d.OffsetAt(r.End)
	if end < start {
		return ""
	}
	return d.Text[start:end]
}

// LineRange returns the range covering the given zero-based line, terminator excluded.
func (d *Document) LineRange(line int) Range {
	return Range{
		Start: Position{Line: line},
		End:   Position{Line: line, Character: utf8.RuneCountInString(d.Line(line))},
	}
}

// End returns the position just past the last character.
func (d *Document) End() Position {
	return d.PositionAt(len(d.Text))
}
