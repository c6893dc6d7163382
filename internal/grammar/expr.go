package grammar

import (
	"strings"

	"umlsense/internal/token"
)

// Expr is a grammar expression. The set of implementations is closed.
type Expr interface {
	isExpr()
	String() string
}

type (
	// Tok matches one token of the given kind.
	Tok struct{ Kind token.Kind }
	// NotTok matches one token whose kind is not in Kinds.
	NotTok struct{ Kinds []token.Kind }
	// Ref invokes another rule.
	Ref struct{ Rule RuleID }
	// Seq matches Items in order.
	Seq struct{ Items []Expr }
	// Alt tries Alts in order; the first match wins.
	Alt struct{ Alts []Expr }
	// Opt matches X zero or one time.
	Opt struct{ X Expr }
	// Star matches X zero or more times.
	Star struct{ X Expr }
	// Plus matches X one or more times.
	Plus struct{ X Expr }
	// Cut commits the enclosing sequence: later failures are repaired, not backtracked.
	Cut struct{}
	// Peek succeeds without consuming when the next token has the given kind.
	Peek struct{ Kind token.Kind }
)

func (Tok) isExpr()    {}
func (NotTok) isExpr() {}
func (Ref) isExpr()    {}
func (Seq) isExpr()    {}
func (Alt) isExpr()    {}
func (Opt) isExpr()    {}
func (Star) isExpr()   {}
func (Plus) isExpr()   {}
func (Cut) isExpr()    {}
func (Peek) isExpr()   {}

// Excludes reports whether k is rejected by the negated set.
func (n NotTok) Excludes(k token.Kind) bool {
	for _, x := range n.Kinds {
		if x == k {
			return true
		}
	}
	return false
}

func kindName(k token.Kind) string {
	if sym := token.Vocab.SymbolicName(k); sym != "" {
		return sym
	}
	return token.Vocab.LiteralName(k)
}

func (t Tok) String() string { return kindName(t.Kind) }

func (n NotTok) String() string {
	names := make([]string, len(n.Kinds))
	for i, k := range n.Kinds {
		names[i] = kindName(k)
	}
	return "~(" + strings.Join(names, "|") + ")"
}

func (r Ref) String() string { return r.Rule.String() }

func (s Seq) String() string { return joinExprs(s.Items, " ") }

func (a Alt) String() string { return "(" + joinExprs(a.Alts, " | ") + ")" }

func (o Opt) String() string { return group(o.X) + "?" }

func (s Star) String() string { return group(s.X) + "*" }

func (p Plus) String() string { return group(p.X) + "+" }

func (Cut) String() string { return "^" }

func (p Peek) String() string { return "&" + kindName(p.Kind) }

func joinExprs(xs []Expr, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, sep)
}

func group(x Expr) string {
	if s, ok := x.(Seq); ok && len(s.Items) > 1 {
		return "(" + s.String() + ")"
	}
	return x.String()
}

// constructors keep the rule table readable

func tok(k token.Kind) Expr { return Tok{Kind: k} }
func not(ks ...token.Kind) Expr { return NotTok{Kinds: ks} }
func ref(r RuleID) Expr { return Ref{Rule: r} }
func seq(items ...Expr) Expr { return Seq{Items: items} }
func alt(alts ...Expr) Expr { return Alt{Alts: alts} }
func opt(items ...Expr) Expr { return Opt{X: maybeSeq(items)} }
func star(items ...Expr) Expr { return Star{X: maybeSeq(items)} }
func plus(items ...Expr) Expr { return Plus{X: maybeSeq(items)} }
func peek(k token.Kind) Expr { return Peek{Kind: k} }

func maybeSeq(items []Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return Seq{Items: items}
}

var cut Expr = Cut{}
