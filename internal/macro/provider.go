package macro

import (
	"context"
	"fmt"

	"umlsense/internal/diagram"
	"umlsense/internal/intellisense"
	"umlsense/internal/source"
	"umlsense/internal/trace"
)

// textBefore returns the diagram text from the block start up to pos. Outside
// any diagram it is the document prefix, so macros in included headers
// written before the first @startuml still count.
func textBefore(ctx context.Context, doc *source.Document, pos source.Position) string {
	block := diagram.Locate(ctx, doc, pos)
	end := doc.OffsetAt(pos)
	if block.Empty() {
		return doc.Text[:end]
	}
	start := doc.OffsetAt(block.Start)
	return doc.Text[start:end]
}

// MacroProvider offers declared macros as Method suggestions.
type MacroProvider struct{}

func (MacroProvider) Name() string { return "macro" }

// Complete returns one suggestion per macro name. Detail shows the first
// signature and how many more overloads exist.
func (MacroProvider) Complete(ctx context.Context, doc *source.Document, pos source.Position) ([]intellisense.Suggestion, error) {
	_, sp := trace.Start(ctx, trace.ScopePass, "macros")
	macros := Macros(textBefore(ctx, doc, pos))
	out := make([]intellisense.Suggestion, 0, len(macros))
	for _, m := range macros {
		out = append(out, intellisense.Suggestion{
			Label:   m.Name,
			Kind:    intellisense.KindMethod,
			SortKey: m.Name,
			Detail:  m.Detail(),
		})
	}
	sp.Set("macros", len(out)).End("")
	return out, nil
}

// Detail renders the first signature with an overload count suffix.
func (m Macro) Detail() string {
	if len(m.Signatures) == 0 {
		return m.Name
	}
	d := m.Signatures[0].Label
	switch extra := len(m.Signatures) - 1; {
	case extra == 1:
		d += " (+1 overload)"
	case extra > 1:
		d += fmt.Sprintf(" (+%d overloads)", extra)
	}
	return d
}

// VariableProvider offers assigned variables as Variable suggestions.
type VariableProvider struct{}

func (VariableProvider) Name() string { return "variable" }

func (VariableProvider) Complete(ctx context.Context, doc *source.Document, pos source.Position) ([]intellisense.Suggestion, error) {
	_, sp := trace.Start(ctx, trace.ScopePass, "variables")
	vars := Variables(textBefore(ctx, doc, pos))
	out := make([]intellisense.Suggestion, 0, len(vars))
	for _, v := range vars {
		out = append(out, intellisense.Suggestion{
			Label:   v.Name,
			Kind:    intellisense.KindVariable,
			SortKey: v.Name,
			Detail:  v.Value,
		})
	}
	sp.Set("variables", len(out)).End("")
	return out, nil
}
