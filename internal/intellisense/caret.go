package intellisense

import (
	"umlsense/internal/cst"
	"umlsense/internal/source"
	"umlsense/internal/token"
)

// TokenPosition is the result of caret resolution.
type TokenPosition struct {
	// Index is the stream index completion starts from. It is one past the
	// matched token when the caret sits on a hidden token.
	Index int
	// Token is the token under the caret, nil for the fallback position.
	Token *token.Token
	// Context is the deepest node covering the nearest default token.
	Context cst.Node
	// Text is the part of the token already typed.
	Text string
}

// Fallback is the position used when the caret is not on any token.
func Fallback(root cst.Node) TokenPosition {
	return TokenPosition{Index: 0, Context: root}
}

// Resolve maps a diagram-local caret to a token position. A token spans
// [Column, Column+len] on its line, both ends inclusive, so a caret on the
// boundary of two tokens resolves to the earlier one.
func Resolve(caret source.CaretPosition, root cst.Node, tokens []token.Token) (TokenPosition, bool) {
	for index := range tokens {
		tok := &tokens[index]
		text := tok.Text
		if tok.Kind == token.EOF {
			text = ""
		}
		start := tok.Column
		stop := tok.Column + runeLen(text)
		if tok.Line != caret.Line || start > caret.Column || stop < caret.Column {
			continue
		}

		ctx := findContext(root, tokens, index)
		pos := TokenPosition{Index: index, Token: tok, Context: ctx}
		if tok.Channel != token.DefaultChannel {
			pos.Index++
		} else {
			pos.Text = prefixRunes(text, caret.Column-start)
		}
		return pos, true
	}
	return TokenPosition{}, false
}

// ResolveOrFallback never fails: a miss yields Fallback(root).
func ResolveOrFallback(caret source.CaretPosition, root cst.Node, tokens []token.Token) TokenPosition {
	if pos, ok := Resolve(caret, root, tokens); ok {
		return pos
	}
	return Fallback(root)
}

// findContext returns the deepest node whose token span covers the nearest
// default-channel token at or before index. Error nodes lose to matching
// rule or terminal siblings.
func findContext(n cst.Node, tokens []token.Token, index int) cst.Node {
	if n == nil || len(tokens) == 0 {
		return nil
	}
	index = min(index, len(tokens)-1)
	for index > 0 && (tokens[index].Kind == token.EOF || tokens[index].Channel != token.DefaultChannel) {
		index--
	}
	return contextOf(n, &tokens[index])
}

func contextOf(n cst.Node, anchor *token.Token) cst.Node {
	start, stop := n.Bounds()
	if start == nil || stop == nil || !covers(start, stop, anchor) {
		return nil
	}
	if r, ok := n.(*cst.RuleNode); ok {
		for _, c := range r.Children {
			found := contextOf(c, anchor)
			if found == nil {
				continue
			}
			if _, isErr := found.(*cst.ErrorNode); !isErr {
				return found
			}
		}
	}
	return n
}

func covers(start, stop, anchor *token.Token) bool {
	return source.Span{Start: start.Span.Start, End: stop.Span.End}.Covers(anchor.Span)
}
