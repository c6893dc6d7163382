package macro

import (
	"regexp"
	"slices"
	"strings"
)

// Signature is one declared parameter list of a macro.
type Signature struct {
	Label  string   `json:"label"`
	Params []string `json:"params,omitempty"`
	// HasParens is false for object-like macros (!define NAME value).
	HasParens bool `json:"-"`
}

// Macro groups every overload declared under one name, in declaration order.
type Macro struct {
	Name       string
	Signatures []Signature
}

// Variable is a preprocessor variable and the last value assigned to it.
type Variable struct {
	Name  string
	Value string
	Scope string // "", "global" or "local"
}

var (
	macroRe = regexp.MustCompile(`^[ \t]*!(define|definelong|procedure|function|unquoted[ \t]+procedure|unquoted[ \t]+function)[ \t]+(\$?[A-Za-z_][\w$]*)(\([^)]*\))?`)
	varRe   = regexp.MustCompile(`^[ \t]*!(?:(global|local)[ \t]+)?(\$[A-Za-z_]\w*)[ \t]*(?:\?=|=)[ \t]*(.*?)[ \t]*$`)
)

// Macros returns the macros declared in text, sorted by name.
func Macros(text string) []Macro {
	index := map[string]int{}
	var out []Macro
	for _, line := range strings.Split(text, "\n") {
		m := macroRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		sig := newSignature(m[2], m[3])
		i, ok := index[m[2]]
		if !ok {
			i = len(out)
			index[m[2]] = i
			out = append(out, Macro{Name: m[2]})
		}
		if !hasSignature(out[i].Signatures, sig.Label) {
			out[i].Signatures = append(out[i].Signatures, sig)
		}
	}
	sortByName(out, func(m Macro) string { return m.Name })
	return out
}

// Variables returns the variables assigned in text, sorted by name. A later
// assignment replaces the value of an earlier one.
func Variables(text string) []Variable {
	index := map[string]int{}
	var out []Variable
	for _, line := range strings.Split(text, "\n") {
		m := varRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		v := Variable{Scope: m[1], Name: m[2], Value: m[3]}
		if i, ok := index[v.Name]; ok {
			out[i] = v
			continue
		}
		index[v.Name] = len(out)
		out = append(out, v)
	}
	sortByName(out, func(v Variable) string { return v.Name })
	return out
}

func newSignature(name, params string) Signature {
	if params == "" {
		return Signature{Label: name}
	}
	inner := params[1 : len(params)-1]
	sig := Signature{HasParens: true, Params: splitParams(inner)}
	sig.Label = name + "(" + strings.Join(sig.Params, ", ") + ")"
	return sig
}

// splitParams splits on commas outside quotes. Defaults stay attached to
// their parameter.
func splitParams(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var (
		out   []string
		cur   strings.Builder
		quote rune
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	return append(out, strings.TrimSpace(cur.String()))
}

func hasSignature(sigs []Signature, label string) bool {
	for _, s := range sigs {
		if s.Label == label {
			return true
		}
	}
	return false
}

func sortByName[T any](xs []T, name func(T) string) {
	slices.SortStableFunc(xs, func(a, b T) int {
		return strings.Compare(name(a), name(b))
	})
}
