// Package diagram finds @startuml ... @enduml blocks inside a document.
// Everything outside the delimiters is inert text.
package diagram

import (
	"fmt"
	"path"
	"strings"

	"umlsense/internal/source"
)

// Block is one delimited diagram. Content is exactly the document text
// between Start and End; Start is always at column 0 of the marker line.
type Block struct {
	Start source.Position
	End   source.Position
	// Content is the block text, markers included.
	Content string
	// Title is the declared title or a generated "<name>-<index>" fallback.
	Title         string
	TitleDeclared bool
	// Index is the zero-based ordinal of the block in its document, -1 for a
	// degenerate block.
	Index int
}

// Empty reports whether the block is the degenerate "no diagram here" block.
func (b Block) Empty() bool {
	return b.Index < 0
}

// Range returns the document range covered by the block.
func (b Block) Range() source.Range {
	return source.Range{Start: b.Start, End: b.End}
}

// Caret converts a document position into block-local caret coordinates
// (1-based line, 0-based column).
func (b Block) Caret(pos source.Position) source.CaretPosition {
	return source.CaretPosition{Line: pos.Line + 1 - b.Start.Line, Column: pos.Character}
}

// ToDocument maps a block-local 1-based line and 0-based column back into the
// document. Only the first block line is shifted by the start column.
func (b Block) ToDocument(line, column int) source.Position {
	if line == 1 {
		return source.Position{Line: b.Start.Line, Character: b.Start.Character + column}
	}
	return source.Position{Line: b.Start.Line + line - 1, Character: column}
}

func (b Block) String() string {
	return fmt.Sprintf("%s [%s-%s]", b.Title, b.Start, b.End)
}

func degenerate(pos source.Position) Block {
	return Block{Start: pos, End: pos, Index: -1}
}

// fallbackTitle mirrors the name a renderer gives an untitled diagram.
func fallbackTitle(uri string, index int) string {
	name := path.Base(strings.ReplaceAll(uri, "\\", "/"))
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" || name == "." || name == "/" {
		name = "untitled"
	}
	return fmt.Sprintf("%s-%d", name, index)
}
