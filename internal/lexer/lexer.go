package lexer

import (
	"strings"
	"unicode/utf8"

	"umlsense/internal/token"
)

// Lexer turns diagram text into a token stream. It never fails: unknown
// input becomes AnythingElse and malformed comments or strings are reported
// and still tokenized.
type Lexer struct {
	cursor Cursor
	opts   Options
	index  int
	line   int // 1-based line of the cursor
	col    int // 0-based rune column of the cursor
	done   bool
}

// New creates a lexer over text.
func New(text string, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(text, opts.File),
		opts:   opts,
		line:   1,
	}
}

// Tokenize lexes text to completion. The stream always ends with exactly one EOF token.
func Tokenize(text string, opts Options) []token.Token {
	lx := New(text, opts)
	out := make([]token.Token, 0, len(text)/3+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий токен, включая hidden.
// После EOF всегда возвращает EOF с тем же индексом.
func (lx *Lexer) Next() token.Token {
	start := lx.cursor.Mark()
	line, col := lx.line, lx.col

	if lx.cursor.EOF() {
		tok := token.Token{
			Index: lx.index,
			Kind:  token.EOF,
			Line:  line,
			// EOF sits at the end of the last line
			Column: col,
			Span:   lx.cursor.SpanFrom(start),
		}
		if !lx.done {
			lx.done = true
			lx.index++
		}
		return tok
	}

	kind := lx.scan()

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.Text[sp.Start:sp.End]
	tok := token.Token{
		Index:  lx.index,
		Kind:   kind,
		Text:   text,
		Line:   line,
		Column: col,
		Span:   sp,
	}
	if kind.HiddenByDefault() {
		tok.Channel = token.HiddenChannel
	}
	lx.index++
	lx.advancePosition(text)
	return tok
}

func (lx *Lexer) advancePosition(text string) {
	if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
		lx.line += strings.Count(text, "\n")
		lx.col = utf8.RuneCountInString(text[nl+1:])
		return
	}
	lx.col += utf8.RuneCountInString(text)
}

// scan consumes exactly one token and returns its kind.
func (lx *Lexer) scan() token.Kind {
	c := &lx.cursor
	ch := c.Peek()

	switch {
	case ch == '\n':
		c.Bump()
		return token.Newline
	case ch == '\r' && c.PeekAt(1) == '\n':
		c.Advance(2)
		return token.Newline
	case isSpace(ch):
		for !c.EOF() && isSpace(c.Peek()) && !(c.Peek() == '\r' && c.PeekAt(1) == '\n') {
			c.Bump()
		}
		return token.WS
	case ch == '\'':
		return lx.scanLineComment()
	case ch == '/':
		switch c.PeekAt(1) {
		case '\'':
			return lx.scanBlockComment()
		case '/':
			return lx.scanLineComment()
		}
	case ch == '@':
		if k, ok := lx.scanMarker(); ok {
			return k
		}
	case ch == '"':
		return lx.scanString()
	case ch == '{':
		return lx.scanOpenBrace()
	case ch == '}':
		if c.PeekAt(1) == '}' {
			c.Advance(2)
			return token.EmbedClose
		}
		c.Bump()
		return token.RCurly
	case ch == '<' && c.PeekAt(1) == '<':
		if k, ok := lx.scanStereotype(); ok {
			return k
		}
	}

	if k, ok := lx.scanConnector(); ok {
		return k
	}

	if k, ok := lx.scanPunct(ch); ok {
		return k
	}

	if r, _ := lx.peekRune(); isIdentRune(r) {
		return lx.scanIdentOrKeyword()
	}

	lx.bumpRune()
	return token.AnythingElse
}

func (lx *Lexer) scanPunct(ch byte) (token.Kind, bool) {
	var k token.Kind
	switch ch {
	case '+':
		k = token.Plus
	case '-':
		k = token.Minus
	case '#':
		k = token.Hash
	case '~':
		k = token.Tilde
	case ':':
		k = token.Colon
	case ',':
		k = token.Comma
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '[':
		k = token.LSquare
	case ']':
		k = token.RSquare
	default:
		return token.Invalid, false
	}
	lx.cursor.Bump()
	return k, true
}

func (lx *Lexer) scanIdentOrKeyword() token.Kind {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentRune(r) {
			break
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	if k, ok := token.LookupKeyword(lx.cursor.Text[sp.Start:sp.End]); ok {
		return k
	}
	return token.Ident
}

// scanMarker recognises @startuml / @enduml not followed by an identifier character.
func (lx *Lexer) scanMarker() (token.Kind, bool) {
	for _, m := range []string{"@startuml", "@enduml"} {
		if !lx.cursor.HasPrefix(m) {
			continue
		}
		next := lx.cursor.PeekAt(uint32(len(m))) // #nosec G115
		if isIdentByte(next) || next >= utf8.RuneSelf {
			return token.Invalid, false
		}
		lx.cursor.Advance(len(m))
		k, _ := token.LookupMarker(m)
		return k, true
	}
	return token.Invalid, false
}

func (lx *Lexer) scanOpenBrace() token.Kind {
	c := &lx.cursor
	if c.PeekAt(1) == '{' {
		c.Advance(2)
		return token.EmbedOpen
	}
	for _, m := range []string{"{static}", "{abstract}"} {
		if c.HasPrefix(m) {
			c.Advance(len(m))
			k, _ := token.LookupModifier(m)
			return k
		}
	}
	c.Bump()
	return token.LCurly
}

func (lx *Lexer) scanStereotype() (token.Kind, bool) {
	c := &lx.cursor
	rest := c.Text[c.Off:c.Limit]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	end := strings.Index(rest[2:], ">>")
	if end < 0 {
		return token.Invalid, false
	}
	c.Advance(2 + end + 2)
	return token.Stereotype, true
}
