package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"umlsense/internal/token"
)

type TokenOutput struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Hidden bool   `json:"hidden,omitempty"`
}

func tokenOutput(tok token.Token) TokenOutput {
	return TokenOutput{
		Index:  tok.Index,
		Kind:   tok.Kind.String(),
		Text:   tok.Text,
		Line:   tok.Line,
		Column: tok.Column,
		Start:  tok.Span.Start,
		End:    tok.Span.End,
		Hidden: tok.IsHidden(),
	}
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Hidden tokens are skipped unless withHidden is set.
func FormatTokensPretty(w io.Writer, tokens []token.Token, withHidden bool) error {
	for _, tok := range tokens {
		if tok.IsHidden() && !withHidden {
			continue
		}
		if _, err := fmt.Fprintf(w, "%3d: %-20s", tok.Index, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d", tok.Line, tok.Column)
		if tok.IsHidden() {
			fmt.Fprint(w, " (hidden)")
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensANTLR prints one token per line in the runtime's debug form.
func FormatTokensANTLR(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok.String()); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, withHidden bool) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsHidden() && !withHidden {
			continue
		}
		output = append(output, tokenOutput(tok))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
