package lexer

import (
	"unicode/utf8"

	"umlsense/internal/token"
)

// scanConnector recognises relationship arrows:
//
//	head? body tail?
//	head = '<|' | '<' | 'o' | '*'
//	body = '-'+ | '.'+
//	tail = '|>' | '>' | 'o' | '*'
//
// A lone '-' is the visibility marker, not a connector. A trailing 'o' or
// '*' only belongs to the arrow when no identifier character follows it.
func (lx *Lexer) scanConnector() (token.Kind, bool) {
	c := &lx.cursor
	start := c.Mark()

	head := 0
	switch {
	case c.HasPrefix("<|"):
		head = 2
	case c.Peek() == '<' || c.Peek() == 'o' || c.Peek() == '*':
		head = 1
	}
	bodyChar := c.PeekAt(uint32(head)) // #nosec G115
	if !isConnectorBody(bodyChar) {
		return token.Invalid, false
	}
	c.Advance(head)

	body := 0
	for c.Peek() == bodyChar {
		c.Bump()
		body++
	}

	tail := 0
	switch {
	case c.HasPrefix("|>"):
		tail = 2
	case c.Peek() == '>':
		tail = 1
	case c.Peek() == 'o' || c.Peek() == '*':
		next := c.PeekAt(1)
		if !isIdentByte(next) && next < utf8.RuneSelf {
			tail = 1
		}
	}
	c.Advance(tail)

	if head == 0 && tail == 0 && body == 1 && bodyChar == '-' {
		c.Reset(start)
		return token.Invalid, false
	}
	return token.Connector, true
}
