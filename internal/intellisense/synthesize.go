package intellisense

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"umlsense/internal/cst"
	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

// SuggestionKind classifies a suggestion for the editor.
type SuggestionKind uint8

const (
	KindKeyword SuggestionKind = iota
	KindClass
	KindMethod
	KindVariable
)

var suggestionKindNames = [...]string{
	KindKeyword:  "keyword",
	KindClass:    "class",
	KindMethod:   "method",
	KindVariable: "variable",
}

func (k SuggestionKind) String() string {
	if int(k) < len(suggestionKindNames) {
		return suggestionKindNames[k]
	}
	return fmt.Sprintf("SuggestionKind(%d)", k)
}

// MarshalText lets encoders print the kind by name.
func (k SuggestionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Suggestion is one completion entry.
type Suggestion struct {
	Label   string         `json:"label"`
	Kind    SuggestionKind `json:"kind"`
	SortKey string         `json:"sortKey"`
	Detail  string         `json:"detail,omitempty"`
}

// SynthOptions tweaks Synthesize. The zero value uses Connectors.
type SynthOptions struct {
	Connectors []string
}

// Synthesize maps candidates to suggestions sorted by SortKey:
// class names ("00_"), connectors in authored order ("01_"), then keyword
// labels built from symbolic names ("02_"). IDENT is never offered
// directly; a class-name rule candidate stands for it.
func Synthesize(c Candidates, root cst.Node, opts SynthOptions) []Suggestion {
	connectors := opts.Connectors
	if connectors == nil {
		connectors = Connectors
	}

	var out []Suggestion
	if c.HasRule(grammar.RuleClassName) {
		for _, name := range ClassNames(root) {
			out = append(out, Suggestion{Label: name, Kind: KindClass, SortKey: "00_" + name})
		}
	}

	for k, follow := range c.Tokens {
		switch k {
		case token.Ident:
			continue
		case token.Connector:
			for i, conn := range connectors {
				out = append(out, Suggestion{Label: conn, Kind: KindKeyword, SortKey: fmt.Sprintf("01_%02d", i)})
			}
			continue
		}
		label := keywordLabel(k, follow)
		if label == "" {
			continue
		}
		out = append(out, Suggestion{Label: label, Kind: KindKeyword, SortKey: "02_" + label})
	}

	slices.SortStableFunc(out, func(a, b Suggestion) int {
		return strings.Compare(a.SortKey, b.SortKey)
	})
	return out
}

// keywordLabel joins the symbolic names of k and its followers. Kinds
// without a symbolic name are skipped.
func keywordLabel(k token.Kind, follow []token.Kind) string {
	parts := make([]string, 0, 1+len(follow))
	for _, x := range append([]token.Kind{k}, follow...) {
		if sym := token.Vocab.SymbolicName(x); sym != "" {
			parts = append(parts, sym)
		}
	}
	// Caser is stateful, one per call
	return cases.Lower(language.Und).String(strings.Join(parts, " "))
}
