package macro

import (
	"context"
	"unicode"

	"umlsense/internal/source"
)

// SignatureHelp describes the macro call around the caret.
type SignatureHelp struct {
	Name            string      `json:"name"`
	Signatures      []Signature `json:"signatures"`
	ActiveSignature int         `json:"activeSignature"`
	ActiveParameter int         `json:"activeParameter"`
}

// Signatures returns help for the innermost unclosed macro call on the
// caret line. ok is false when the caret is not inside a call to a known
// macro with parameters.
func Signatures(ctx context.Context, doc *source.Document, pos source.Position) (SignatureHelp, bool) {
	before := textBefore(ctx, doc, pos)
	name, arg, ok := openCall(lastLine(before))
	if !ok {
		return SignatureHelp{}, false
	}
	for _, m := range Macros(before) {
		if m.Name != name {
			continue
		}
		var sigs []Signature
		for _, s := range m.Signatures {
			if s.HasParens {
				sigs = append(sigs, s)
			}
		}
		if len(sigs) == 0 {
			return SignatureHelp{}, false
		}
		help := SignatureHelp{Name: name, Signatures: sigs, ActiveParameter: arg}
		for i, s := range sigs {
			if len(s.Params) > arg {
				help.ActiveSignature = i
				break
			}
		}
		return help, true
	}
	return SignatureHelp{}, false
}

func lastLine(s string) string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			return s[i+1:]
		}
	}
	return s
}

// openCall finds the innermost '(' left open in line and the identifier
// before it. arg counts the top-level commas after that parenthesis.
func openCall(line string) (name string, arg int, ok bool) {
	rs := []rune(line)
	var (
		stack  []int // positions of open parens
		commas []int
		quote  rune
	)
	for i, r := range rs {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"':
			quote = r
		case r == '(':
			stack = append(stack, i)
			commas = append(commas, 0)
		case r == ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				commas = commas[:len(commas)-1]
			}
		case r == ',':
			if len(commas) > 0 {
				commas[len(commas)-1]++
			}
		}
	}
	if len(stack) == 0 {
		return "", 0, false
	}
	open := stack[len(stack)-1]
	end := open
	for end > 0 && rs[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 && isNameRune(rs[start-1]) {
		start--
	}
	if start == end {
		return "", 0, false
	}
	return string(rs[start:end]), commas[len(commas)-1], true
}

func isNameRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
