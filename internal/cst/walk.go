package cst

import (
	"strings"

	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

// Walk visits n and its descendants depth-first in source order. Returning
// false from fn skips the children of the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if r, ok := n.(*RuleNode); ok {
		for _, c := range r.Children {
			Walk(c, fn)
		}
	}
}

// Fold threads acc through every node in source order.
func Fold[T any](n Node, acc T, fn func(T, Node) T) T {
	Walk(n, func(x Node) bool {
		acc = fn(acc, x)
		return true
	})
	return acc
}

// FindAll returns every rule node recognised by id, outermost first.
func FindAll(n Node, id grammar.RuleID) []*RuleNode {
	return Fold(n, []*RuleNode(nil), func(acc []*RuleNode, x Node) []*RuleNode {
		if r, ok := x.(*RuleNode); ok && r.Rule == id {
			acc = append(acc, r)
		}
		return acc
	})
}

// Count returns the number of rule nodes recognised by id.
func Count(n Node, id grammar.RuleID) int {
	return len(FindAll(n, id))
}

// Errors returns the tokens skipped during recovery.
func Errors(n Node) []*token.Token {
	return Fold(n, []*token.Token(nil), func(acc []*token.Token, x Node) []*token.Token {
		if e, ok := x.(*ErrorNode); ok {
			acc = append(acc, e.Token)
		}
		return acc
	})
}

// Dump renders the tree as a LISP-style s-expression.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n)
	return sb.String()
}

func dump(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *TerminalNode:
		sb.WriteString(v.Token.Display())
	case *ErrorNode:
		sb.WriteString("!")
		sb.WriteString(v.Token.Display())
	case *RuleNode:
		if len(v.Children) == 0 {
			sb.WriteString(v.Rule.String())
			return
		}
		sb.WriteString("(")
		sb.WriteString(v.Rule.String())
		for _, c := range v.Children {
			sb.WriteString(" ")
			dump(sb, c)
		}
		sb.WriteString(")")
	}
}
