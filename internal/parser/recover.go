package parser

import (
	"fmt"

	"umlsense/internal/cst"
	"umlsense/internal/diag"
	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

func quote(t *token.Token) string {
	return "'" + t.Display() + "'"
}

// recover repairs a failed item of a committed sequence and returns the
// nodes produced while doing so.
func (p *Parser) recover(it grammar.Expr) []cst.Node {
	cur := p.cur()

	want, isTok := it.(grammar.Tok)
	if !isTok {
		p.report(diag.SynNoViableAlt, cur, fmt.Sprintf("no viable alternative at input %s", quote(cur)))
		return p.skipUntil(nil)
	}

	expecting := token.Vocab.DisplayName(want.Kind)

	// single-token deletion
	if cur.Kind != token.EOF && p.la(1).Kind == want.Kind {
		p.report(diag.SynExtraneousInput, cur, fmt.Sprintf("extraneous input %s expecting %s", quote(cur), expecting))
		skipped := &cst.ErrorNode{Token: p.advance()}
		return []cst.Node{skipped, &cst.TerminalNode{Token: p.advance()}}
	}

	if grammar.IsSync(cur.Kind) {
		p.report(diag.SynMissingToken, cur, fmt.Sprintf("missing %s at %s", expecting, quote(cur)))
		return nil
	}

	p.report(diag.SynMismatchedInput, cur, fmt.Sprintf("mismatched input %s expecting %s", quote(cur), expecting))
	out := p.skipUntil(&want.Kind)
	if p.at(want.Kind) {
		out = append(out, &cst.TerminalNode{Token: p.advance()})
	}
	return out
}

// skipUntil consumes tokens as error nodes until a sync token or, when
// given, the wanted kind.
func (p *Parser) skipUntil(want *token.Kind) []cst.Node {
	var out []cst.Node
	for !grammar.IsSync(p.cur().Kind) {
		if want != nil && p.at(*want) {
			break
		}
		out = append(out, &cst.ErrorNode{Token: p.advance()})
	}
	return out
}
