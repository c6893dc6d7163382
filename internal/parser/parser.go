// Package parser interprets the diagram grammar over a token stream.
//
// Ordered choice backtracks silently, which keeps prose and other
// unrecognised lines out of the error list. A cut (^) commits the current
// sequence: later failures in it are repaired (single-token deletion,
// missing-token report, resync to end of line) and reported as SyntaxErrors.
package parser

import (
	"umlsense/internal/cst"
	"umlsense/internal/diag"
	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

type Options struct {
	MaxErrors uint // 0 — без ограничений
}

// SyntaxError is one recognition failure.
type SyntaxError struct {
	Code    diag.Code
	Message string
	Token   *token.Token // offending token; nil when not available
}

type Result struct {
	Tree   *cst.RuleNode
	Errors []SyntaxError
}

// Parser — состояние парсера на один текст диаграммы
type Parser struct {
	toks []token.Token
	dt   []int // индексы токенов default-канала
	pos  int   // позиция в dt
	errs []SyntaxError
	opts Options
}

type mark struct {
	pos  int
	nerr int
}

// Parse runs rule entry over tokens. tokens must come from the lexer (ending
// with EOF); tree nodes point into that slice. The entry rule is committed
// from its first item, so the result always has a root.
func Parse(tokens []token.Token, entry grammar.RuleID, opts Options) Result {
	p := newParser(tokens, opts)
	root, _ := p.rule(entry, true)
	return Result{Tree: root, Errors: p.errs}
}

func newParser(tokens []token.Token, opts Options) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		eof := token.Token{Kind: token.EOF, Index: len(tokens), Line: 1}
		if n := len(tokens); n > 0 {
			last := tokens[n-1]
			eof.Line, eof.Span.Start, eof.Span.End = last.Line, last.Span.End, last.Span.End
			eof.Column = last.Column + last.RuneLen()
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	p := &Parser{toks: tokens, opts: opts}
	for i := range tokens {
		if tokens[i].Channel == token.DefaultChannel {
			p.dt = append(p.dt, i)
		}
	}
	return p
}

func (p *Parser) cur() *token.Token {
	return &p.toks[p.dt[p.pos]]
}

// la возвращает токен на n позиций вперёд по default-каналу
func (p *Parser) la(n int) *token.Token {
	i := min(p.pos+n, len(p.dt)-1)
	return &p.toks[p.dt[i]]
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

// advance съедает текущий токен; EOF не съедается
func (p *Parser) advance() *token.Token {
	tok := p.cur()
	if p.pos < len(p.dt)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) mark() mark {
	return mark{pos: p.pos, nerr: len(p.errs)}
}

// reset откатывает позицию и ошибки, накопленные после метки
func (p *Parser) reset(m mark) {
	p.pos = m.pos
	p.errs = p.errs[:m.nerr]
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && uint(len(p.errs)) >= p.opts.MaxErrors
}

func (p *Parser) report(code diag.Code, tok *token.Token, msg string) {
	if p.enough() {
		return
	}
	p.errs = append(p.errs, SyntaxError{Code: code, Message: msg, Token: tok})
}
