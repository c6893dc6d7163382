// Package session runs the lexer and the tolerant parser over one text
// snapshot. A Session owns its tokens and tree; nothing is shared between
// sessions, so concurrent requests never race.
package session

import (
	"context"

	"umlsense/internal/cst"
	"umlsense/internal/diag"
	"umlsense/internal/grammar"
	"umlsense/internal/lexer"
	"umlsense/internal/parser"
	"umlsense/internal/source"
	"umlsense/internal/token"
	"umlsense/internal/trace"
)

// Stage tells which recognizer produced an error.
type Stage uint8

const (
	StageLexer Stage = iota
	StageParser
)

func (s Stage) String() string {
	if s == StageLexer {
		return "lexer"
	}
	return "parser"
}

// Error is a lexical or syntax error in diagram-local coordinates.
type Error struct {
	Stage   Stage
	Code    diag.Code
	Message string
	// Token is the offending token, nil when the recognizer supplied none.
	Token *token.Token
}

type Options struct {
	MaxErrors uint
	File      source.FileID
}

// Session is the result of parsing one text buffer.
type Session struct {
	Text       string
	Entry      grammar.RuleID
	Tokens     []token.Token
	Tree       *cst.RuleNode
	Vocabulary *token.Vocabulary
	Errors     []Error
}

// Parse lexes and parses text with the given entry rule. It never fails:
// anomalies are recorded in Errors.
func Parse(ctx context.Context, text string, entry grammar.RuleID, opts Options) *Session {
	_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	lexErrs := &lexCollector{}
	toks := lexer.Tokenize(text, lexer.Options{Reporter: lexErrs, File: opts.File})
	lexSpan.Set("bytes", len(text)).Set("tokens", len(toks)).Set("errors", len(lexErrs.items)).End("")

	_, parseSpan := trace.Start(ctx, trace.ScopePass, "parse")
	res := parser.Parse(toks, entry, parser.Options{MaxErrors: opts.MaxErrors})
	parseSpan.Set("errors", len(res.Errors)).End(entry.String())

	s := &Session{
		Text:       text,
		Entry:      entry,
		Tokens:     toks,
		Tree:       res.Tree,
		Vocabulary: token.Vocab,
	}
	for _, le := range lexErrs.items {
		s.Errors = append(s.Errors, Error{
			Stage:   StageLexer,
			Code:    le.code,
			Message: le.msg,
			Token:   s.tokenAt(le.span.Start),
		})
	}
	for _, pe := range res.Errors {
		s.Errors = append(s.Errors, Error{
			Stage:   StageParser,
			Code:    pe.Code,
			Message: pe.Message,
			Token:   pe.Token,
		})
	}
	return s
}

// DefaultTokens returns the default-channel tokens, EOF included.
func (s *Session) DefaultTokens() []*token.Token {
	out := make([]*token.Token, 0, len(s.Tokens))
	for i := range s.Tokens {
		if s.Tokens[i].Channel == token.DefaultChannel {
			out = append(out, &s.Tokens[i])
		}
	}
	return out
}

// ErrorsOf returns the errors produced by one stage.
func (s *Session) ErrorsOf(stage Stage) []Error {
	var out []Error
	for _, e := range s.Errors {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}

// tokenAt finds the token starting at byte offset off.
func (s *Session) tokenAt(off uint32) *token.Token {
	for i := range s.Tokens {
		if s.Tokens[i].Span.Start == off && s.Tokens[i].Kind != token.EOF {
			return &s.Tokens[i]
		}
	}
	return nil
}

type lexError struct {
	code diag.Code
	span source.Span
	msg  string
}

// lexCollector адаптирует lexer.Reporter к ошибкам сессии
type lexCollector struct {
	items []lexError
}

func (c *lexCollector) Report(kind string, sp source.Span, msg string) {
	code := diag.UnknownCode
	switch kind {
	case lexer.UnterminatedString:
		code = diag.LexUnterminatedString
	case lexer.UnterminatedBlockComment:
		code = diag.LexUnterminatedBlockComment
	}
	c.items = append(c.items, lexError{code: code, span: sp, msg: msg})
}
