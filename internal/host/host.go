// Package host is the editor-facing surface: completions merged from every
// provider, diagnostics kept per document, and macro signature help.
// No entry point returns an error for document content.
package host

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"umlsense/internal/diag"
	"umlsense/internal/diagnose"
	"umlsense/internal/intellisense"
	"umlsense/internal/macro"
	"umlsense/internal/source"
	"umlsense/internal/trace"
)

// Provider is an independent source of completion suggestions.
type Provider interface {
	Name() string
	Complete(ctx context.Context, doc *source.Document, pos source.Position) ([]intellisense.Suggestion, error)
}

// CoreProvider is the grammar-driven completion engine.
type CoreProvider struct {
	Options intellisense.Options
}

func (CoreProvider) Name() string { return "core" }

func (p CoreProvider) Complete(ctx context.Context, doc *source.Document, pos source.Position) ([]intellisense.Suggestion, error) {
	return intellisense.Complete(ctx, doc, pos, p.Options).Suggestions, nil
}

// Options configures a Host.
type Options struct {
	Completion       intellisense.Options
	IncludeMacros    bool
	IncludeVariables bool
	Diagnostics      diagnose.Options
}

// DefaultOptions enables every provider.
func DefaultOptions() Options {
	return Options{
		Completion:       intellisense.DefaultOptions(),
		IncludeMacros:    true,
		IncludeVariables: true,
		Diagnostics:      diagnose.DefaultOptions(),
	}
}

// Host wires providers and the diagnostic store together. It is safe for
// concurrent use; every request builds its own parse session.
type Host struct {
	providers   []Provider
	collector   *diagnose.Collector
	diagnostics *diagnose.Collection
}

// New builds a host with the core provider followed by the enabled
// preprocessor providers.
func New(opts Options) *Host {
	providers := []Provider{CoreProvider{Options: opts.Completion}}
	if opts.IncludeMacros {
		providers = append(providers, macro.MacroProvider{})
	}
	if opts.IncludeVariables {
		providers = append(providers, macro.VariableProvider{})
	}
	return NewWithProviders(opts.Diagnostics, providers...)
}

// NewWithProviders builds a host over an explicit provider list.
func NewWithProviders(dopts diagnose.Options, providers ...Provider) *Host {
	return &Host{
		providers:   providers,
		collector:   diagnose.NewCollector(dopts),
		diagnostics: diagnose.NewCollection(),
	}
}

// ProvideCompletions runs every provider concurrently and concatenates
// their results in provider order. A failing provider contributes nothing.
// A request whose context is already done returns nil.
func (h *Host) ProvideCompletions(ctx context.Context, doc *source.Document, pos source.Position) []intellisense.Suggestion {
	if ctx.Err() != nil {
		return nil
	}
	ctx, sp := trace.Start(trace.WithDocument(ctx, doc.URI), trace.ScopeDriver, "completions")
	defer sp.End(pos.String())

	results := make([][]intellisense.Suggestion, len(h.providers))
	var g errgroup.Group
	for i, p := range h.providers {
		g.Go(func() error {
			out, err := safeComplete(ctx, p, doc, pos)
			if err != nil {
				trace.Point(ctx, trace.ScopePass, "provider-error", fmt.Sprintf("%s: %v", p.Name(), err))
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var merged []intellisense.Suggestion
	for _, r := range results {
		merged = append(merged, r...)
	}
	sp.Set("providers", len(h.providers)).Set("suggestions", len(merged))
	return merged
}

func safeComplete(ctx context.Context, p Provider, doc *source.Document, pos source.Position) (out []intellisense.Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("provider %s panicked: %v", p.Name(), r)
		}
	}()
	return p.Complete(ctx, doc, pos)
}

// SignatureHelp returns macro signature help at pos.
func (h *Host) SignatureHelp(ctx context.Context, doc *source.Document, pos source.Position) (macro.SignatureHelp, bool) {
	return macro.Signatures(ctx, doc, pos)
}

// Diagnose recomputes the diagnostics of doc and replaces the stored set.
func (h *Host) Diagnose(ctx context.Context, doc *source.Document) []diag.Diagnostic {
	diags := h.collector.Diagnose(ctx, doc)
	h.diagnostics.Set(doc.URI, diags)
	return diags
}

// Diagnostics returns the stored diagnostics of uri.
func (h *Host) Diagnostics(uri string) ([]diag.Diagnostic, bool) {
	return h.diagnostics.Get(uri)
}

// ClearDiagnostics forgets doc, e.g. when the editor closes it.
func (h *Host) ClearDiagnostics(doc *source.Document) {
	h.diagnostics.Delete(doc.URI)
}

// Collector exposes the diagnostic collector for batch runs.
func (h *Host) Collector() *diagnose.Collector {
	return h.collector
}
