package lexer

import "umlsense/internal/token"

// '... или //... до конца строки, перевод строки не входит
func (lx *Lexer) scanLineComment() token.Kind {
	c := &lx.cursor
	for !c.EOF() {
		b := c.Peek()
		if b == '\n' || (b == '\r' && c.PeekAt(1) == '\n') {
			break
		}
		c.Bump()
	}
	return token.LineComment
}

// /' ... '/ ; если не закрыт — репорт и обрезаем на EOF
func (lx *Lexer) scanBlockComment() token.Kind {
	c := &lx.cursor
	start := c.Mark()
	c.Advance(2)
	for !c.EOF() {
		if c.Peek() == '\'' && c.PeekAt(1) == '/' {
			c.Advance(2)
			return token.BlockComment
		}
		c.Bump()
	}
	lx.report(UnterminatedBlockComment, c.SpanFrom(start), "unterminated block comment")
	return token.BlockComment
}

// "..." на одной строке; незакрытая строка заканчивается перед переводом строки
func (lx *Lexer) scanString() token.Kind {
	c := &lx.cursor
	start := c.Mark()
	c.Bump()
	for !c.EOF() {
		b := c.Peek()
		if b == '"' {
			c.Bump()
			return token.String
		}
		if b == '\n' || (b == '\r' && c.PeekAt(1) == '\n') {
			break
		}
		c.Bump()
	}
	lx.report(UnterminatedString, c.SpanFrom(start), "unterminated string literal")
	return token.String
}
