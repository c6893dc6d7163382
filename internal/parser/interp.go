package parser

import (
	"umlsense/internal/cst"
	"umlsense/internal/grammar"
)

// rule parses one rule. A committed rule never fails.
func (p *Parser) rule(id grammar.RuleID, committed bool) (*cst.RuleNode, bool) {
	body := grammar.Body(id)
	var (
		nodes []cst.Node
		ok    bool
	)
	switch b := body.(type) {
	case grammar.Seq:
		nodes, ok = p.seq(b.Items, committed)
	default:
		if committed {
			nodes, ok = p.seq([]grammar.Expr{b}, true)
		} else {
			nodes, ok = p.eval(b)
		}
	}
	if !ok {
		return nil, false
	}
	return cst.NewRule(id, nodes), true
}

func (p *Parser) seq(items []grammar.Expr, committed bool) ([]cst.Node, bool) {
	m := p.mark()
	var out []cst.Node
	for _, it := range items {
		if _, isCut := it.(grammar.Cut); isCut {
			committed = true
			continue
		}
		nodes, ok := p.eval(it)
		if ok {
			out = append(out, nodes...)
			continue
		}
		if !committed {
			p.reset(m)
			return nil, false
		}
		out = append(out, p.recover(it)...)
	}
	return out, true
}

// eval matches e at the current position. On failure the parser state is
// left untouched.
func (p *Parser) eval(e grammar.Expr) ([]cst.Node, bool) {
	switch x := e.(type) {
	case grammar.Tok:
		if !p.at(x.Kind) {
			return nil, false
		}
		return []cst.Node{&cst.TerminalNode{Token: p.advance()}}, true

	case grammar.NotTok:
		if x.Excludes(p.cur().Kind) {
			return nil, false
		}
		return []cst.Node{&cst.TerminalNode{Token: p.advance()}}, true

	case grammar.Peek:
		return nil, p.at(x.Kind)

	case grammar.Cut:
		return nil, true

	case grammar.Ref:
		n, ok := p.rule(x.Rule, false)
		if !ok {
			return nil, false
		}
		return []cst.Node{n}, true

	case grammar.Seq:
		return p.seq(x.Items, false)

	case grammar.Alt:
		for _, a := range x.Alts {
			if nodes, ok := p.eval(a); ok {
				return nodes, true
			}
		}
		return nil, false

	case grammar.Opt:
		nodes, _ := p.eval(x.X)
		return nodes, true

	case grammar.Star:
		return p.repeat(x.X, nil), true

	case grammar.Plus:
		first, ok := p.eval(x.X)
		if !ok {
			return nil, false
		}
		return p.repeat(x.X, first), true
	}
	return nil, false
}

func (p *Parser) repeat(x grammar.Expr, out []cst.Node) []cst.Node {
	for {
		before := p.pos
		nodes, ok := p.eval(x)
		if !ok || p.pos == before {
			return out
		}
		out = append(out, nodes...)
	}
}
