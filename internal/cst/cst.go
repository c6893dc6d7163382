// Package cst is the concrete syntax tree produced by the tolerant parser.
//
// A Node is exactly one of *RuleNode, *TerminalNode or *ErrorNode; code
// traverses it with a type switch. Token pointers reference the token
// slice of the parse session and are never copied.
package cst

import (
	"strings"

	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

// Node is a parse tree node.
type Node interface {
	// Bounds returns the first and last token covered by the node, or nils
	// for a rule that matched nothing.
	Bounds() (start, stop *token.Token)
	node()
}

// RuleNode is an internal node recognised by a grammar rule.
type RuleNode struct {
	Rule     grammar.RuleID
	Children []Node
	Start    *token.Token
	Stop     *token.Token
}

// TerminalNode wraps a token matched by the grammar.
type TerminalNode struct {
	Token *token.Token
}

// ErrorNode wraps a token skipped during error recovery.
type ErrorNode struct {
	Token *token.Token
}

func (*RuleNode) node()     {}
func (*TerminalNode) node() {}
func (*ErrorNode) node()    {}

func (r *RuleNode) Bounds() (start, stop *token.Token)     { return r.Start, r.Stop }
func (t *TerminalNode) Bounds() (start, stop *token.Token) { return t.Token, t.Token }
func (e *ErrorNode) Bounds() (start, stop *token.Token)    { return e.Token, e.Token }

// NewRule builds a rule node and derives its bounds from the children.
func NewRule(rule grammar.RuleID, children []Node) *RuleNode {
	n := &RuleNode{Rule: rule, Children: children}
	for _, c := range children {
		start, stop := c.Bounds()
		if start == nil {
			continue
		}
		if n.Start == nil {
			n.Start = start
		}
		n.Stop = stop
	}
	return n
}

// Rules returns the direct children recognised by rule id.
func (r *RuleNode) Rules(id grammar.RuleID) []*RuleNode {
	var out []*RuleNode
	for _, c := range r.Children {
		if rn, ok := c.(*RuleNode); ok && rn.Rule == id {
			out = append(out, rn)
		}
	}
	return out
}

// Rule1 returns the first direct child recognised by rule id, or nil.
func (r *RuleNode) Rule1(id grammar.RuleID) *RuleNode {
	for _, c := range r.Children {
		if rn, ok := c.(*RuleNode); ok && rn.Rule == id {
			return rn
		}
	}
	return nil
}

// Text concatenates the default-channel tokens under n, separated by a space.
func Text(n Node) string {
	var parts []string
	Walk(n, func(x Node) bool {
		switch v := x.(type) {
		case *TerminalNode:
			parts = append(parts, v.Token.Text)
		case *ErrorNode:
			parts = append(parts, v.Token.Text)
		}
		return true
	})
	return strings.Join(parts, " ")
}
