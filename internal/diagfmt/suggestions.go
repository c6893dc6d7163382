package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"umlsense/internal/intellisense"
	"umlsense/internal/macro"
)

// SuggestionJSON is the wire form of a completion entry.
type SuggestionJSON struct {
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	SortKey string `json:"sort_key"`
	Detail  string `json:"detail,omitempty"`
}

// CompletionOutput is the root object of `complete --json`.
type CompletionOutput struct {
	Block       string           `json:"block,omitempty"`
	Line        int              `json:"line"`
	Column      int              `json:"column"`
	Suggestions []SuggestionJSON `json:"suggestions"`
}

// BuildSuggestions converts suggestions for JSON output.
func BuildSuggestions(items []intellisense.Suggestion) []SuggestionJSON {
	out := make([]SuggestionJSON, len(items))
	for i, s := range items {
		out[i] = SuggestionJSON{Label: s.Label, Kind: s.Kind.String(), SortKey: s.SortKey, Detail: s.Detail}
	}
	return out
}

// FormatSuggestionsJSON writes a CompletionOutput.
func FormatSuggestionsJSON(w io.Writer, out CompletionOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatSuggestionsPretty prints an aligned table: label, kind, detail.
func FormatSuggestionsPretty(w io.Writer, items []intellisense.Suggestion, useColor bool) error {
	kindColor := color.New(color.FgCyan)
	detailColor := color.New(color.Faint)
	if useColor {
		kindColor.EnableColor()
		detailColor.EnableColor()
	} else {
		kindColor.DisableColor()
		detailColor.DisableColor()
	}

	width := 0
	for _, s := range items {
		width = max(width, runewidth.StringWidth(s.Label))
	}
	for _, s := range items {
		line := runewidth.FillRight(s.Label, width) + "  " + kindColor.Sprintf("%-8s", s.Kind)
		if s.Detail != "" {
			line += " " + detailColor.Sprint(s.Detail)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatSignaturePretty prints the overloads of a macro call and marks
// the active one and its active parameter.
func FormatSignaturePretty(w io.Writer, help macro.SignatureHelp, useColor bool) error {
	active := color.New(color.Bold, color.Underline)
	if useColor {
		active.EnableColor()
	} else {
		active.DisableColor()
	}
	for i, sig := range help.Signatures {
		marker := "  "
		if i == help.ActiveSignature {
			marker = "> "
		}
		params := make([]string, len(sig.Params))
		for j, p := range sig.Params {
			if i == help.ActiveSignature && j == help.ActiveParameter {
				p = active.Sprint(p)
			}
			params[j] = p
		}
		if _, err := fmt.Fprintf(w, "%s%s(%s)\n", marker, help.Name, strings.Join(params, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatSignatureJSON writes the signature help as indented JSON.
func FormatSignatureJSON(w io.Writer, help macro.SignatureHelp) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(help)
}
