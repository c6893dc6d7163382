// Package diagnose checks every diagram of a document: title presence and
// uniqueness, plus lexer and parser errors anchored to document ranges.
package diagnose

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"umlsense/internal/diag"
	"umlsense/internal/diagram"
	"umlsense/internal/grammar"
	"umlsense/internal/session"
	"umlsense/internal/source"
	"umlsense/internal/token"
	"umlsense/internal/trace"
)

// Options configures a Collector.
type Options struct {
	// Source labels every diagnostic; empty means diag.DefaultSource.
	Source string
	// Max caps the diagnostics per document; 0 means unlimited.
	Max int
	// TitleWarnings enables the missing-title warning.
	TitleWarnings bool
}

// DefaultOptions matches the behaviour of the editor integration.
func DefaultOptions() Options {
	return Options{Source: diag.DefaultSource, Max: 100, TitleWarnings: true}
}

// Collector derives diagnostics from scratch on every call. It holds no
// per-document state and is safe for concurrent use.
type Collector struct {
	opts Options
}

func NewCollector(opts Options) *Collector {
	if opts.Source == "" {
		opts.Source = diag.DefaultSource
	}
	return &Collector{opts: opts}
}

// Diagnose returns the diagnostics of doc in block order: for each block
// the title checks first, then lexer errors, then parser errors.
func (c *Collector) Diagnose(ctx context.Context, doc *source.Document) []diag.Diagnostic {
	ctx, sp := trace.Start(trace.WithDocument(ctx, doc.URI), trace.ScopeDriver, "diagnose")

	bag := diag.NewBag(c.opts.Max)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag, Source: c.opts.Source})
	seen := make(map[string]bool)

	blocks := diagram.LocateAll(ctx, doc)
	for _, b := range blocks {
		bctx, bs := trace.Start(trace.WithBlock(ctx, b.Index, b.Title), trace.ScopeDiagram, "diagram")
		startLine := doc.LineRange(b.Start.Line)

		if !b.TitleDeclared && c.opts.TitleWarnings {
			diag.ReportWarning(rep, diag.SemaMissingTitle, &startLine,
				fmt.Sprintf("diagram has no title, it will be exported as %q", b.Title)).Emit()
		}
		if seen[b.Title] {
			diag.ReportError(rep, diag.SemaDuplicateTitle, &startLine,
				fmt.Sprintf("duplicate diagram title %q", b.Title)).Emit()
		} else {
			seen[b.Title] = true
		}

		sess := session.Parse(bctx, b.Content, grammar.RuleUml, session.Options{File: doc.ID})
		reportSession(rep, b, sess.Errors)
		bs.Set("errors", len(sess.Errors)).End("")
	}

	sp.Set("blocks", len(blocks)).Set("diagnostics", bag.Len()).Set("dropped", bag.Dropped()).End("")
	return bag.Items()
}

// reportSession reports lexer errors before parser errors, each anchored to
// its offending token. rep merges repeats of the same message at the same
// range.
func reportSession(rep diag.Reporter, b diagram.Block, errs []session.Error) {
	for _, e := range errs {
		diag.ReportError(rep, e.Code, TokenRange(b, e.Token), e.Message).Emit()
	}
}

// TokenRange maps a block-local token to a document range, or nil when
// there is no token. The range ends tok's rune length after its start.
func TokenRange(b diagram.Block, tok *token.Token) *source.Range {
	if tok == nil {
		return nil
	}
	start := b.ToDocument(tok.Line, tok.Column)
	text := tok.Text
	if tok.Kind == token.EOF {
		text = ""
	}
	end := start
	if nl := strings.LastIndexByte(text, '\n'); nl >= 0 {
		end.Line += strings.Count(text, "\n")
		end.Character = utf8.RuneCountInString(text[nl+1:])
	} else {
		end.Character += utf8.RuneCountInString(text)
	}
	return &source.Range{Start: start, End: end}
}
