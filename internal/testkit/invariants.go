// Package testkit holds structural checks shared by the fuzz harnesses and
// package tests.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"umlsense/internal/cst"
	"umlsense/internal/token"
)

// CheckTokenInvariants runs the lexer invariants on a token stream:
// 1) the stream ends with exactly one EOF
// 2) indices are sequential and spans contiguous from 0 to len(text)
// 3) concatenated token texts reproduce text
// 4) hidden-channel tokens are exactly the hidden-by-default kinds
func CheckTokenInvariants(text string, toks []token.Token) error {
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenText, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}

	var sb strings.Builder
	var off uint32
	for i, tok := range toks {
		if tok.Index != i {
			return fmt.Errorf("token %d has index %d", i, tok.Index)
		}
		if (tok.Kind == token.EOF) != (i == len(toks)-1) {
			return fmt.Errorf("EOF at %d of %d tokens", i, len(toks))
		}
		if tok.Span.Start != off || tok.Span.End < tok.Span.Start {
			return fmt.Errorf("token %v is not contiguous with offset %d", tok, off)
		}
		if tok.IsHidden() != tok.Kind.HiddenByDefault() {
			return fmt.Errorf("token %v on wrong channel", tok)
		}
		if tok.Line < 1 || tok.Column < 0 {
			return fmt.Errorf("token %v has invalid position", tok)
		}
		off = tok.Span.End
		sb.WriteString(tok.Text)
	}

	// 1) EOF пустой и стоит в конце текста
	if eof := toks[len(toks)-1]; eof.Span.Start != lenText || eof.Text != "" {
		return fmt.Errorf("EOF %v is not at end of text (%d)", eof, lenText)
	}
	if sb.String() != text {
		return fmt.Errorf("token texts do not reproduce the input")
	}
	return nil
}

// CheckTreeInvariants verifies that every token referenced by the tree
// points into toks, that leaves appear in stream order and that every rule
// node's bounds cover its children.
func CheckTreeInvariants(root *cst.RuleNode, toks []token.Token) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	last := -1
	var check func(n cst.Node) error
	check = func(n cst.Node) error {
		switch v := n.(type) {
		case *cst.TerminalNode, *cst.ErrorNode:
			tok, _ := n.Bounds()
			if tok == nil {
				return fmt.Errorf("leaf without token")
			}
			if tok.Index < 0 || tok.Index >= len(toks) || &toks[tok.Index] != tok {
				return fmt.Errorf("leaf token %v is not from the stream", tok)
			}
			if tok.Index <= last {
				return fmt.Errorf("leaf token %v out of order (after %d)", tok, last)
			}
			last = tok.Index
		case *cst.RuleNode:
			for _, c := range v.Children {
				if err := check(c); err != nil {
					return err
				}
				cs, ce := c.Bounds()
				if cs == nil {
					continue
				}
				if v.Start == nil || cs.Index < v.Start.Index || ce.Index > v.Stop.Index {
					return fmt.Errorf("rule %s bounds do not cover child", v.Rule)
				}
			}
		}
		return nil
	}
	return check(root)
}
