package intellisense

import (
	"context"

	"umlsense/internal/diagram"
	"umlsense/internal/session"
	"umlsense/internal/source"
	"umlsense/internal/trace"
)

// Options configures Complete.
type Options struct {
	Collect CollectOptions
	Synth   SynthOptions
}

// DefaultOptions returns the completion configuration used by the host.
func DefaultOptions() Options {
	return Options{Collect: DefaultCollectOptions()}
}

// Result carries the suggestions together with the intermediate state, for
// callers that want to show how they were derived.
type Result struct {
	Block       diagram.Block
	Caret       source.CaretPosition
	Position    TokenPosition
	Candidates  Candidates
	Suggestions []Suggestion
}

// Complete computes suggestions for pos in doc. It reparses the enclosing
// diagram from scratch and never fails; an empty result means nothing is
// expected at pos.
func Complete(ctx context.Context, doc *source.Document, pos source.Position, opts Options) Result {
	ctx = trace.WithDocument(ctx, doc.URI)
	block := diagram.Locate(ctx, doc, pos)
	ctx = trace.WithBlock(ctx, block.Index, block.Title)

	ctx, sp := trace.Start(ctx, trace.ScopeDiagram, "complete")
	defer sp.End(pos.String())

	sess := session.Parse(ctx, block.Content, opts.Collect.Entry, session.Options{File: doc.ID})
	res := Result{Block: block, Caret: block.Caret(pos)}

	_, rs := trace.Start(ctx, trace.ScopePass, "resolve")
	res.Position = ResolveOrFallback(res.Caret, sess.Tree, sess.Tokens)
	rs.Set("line", res.Caret.Line).Set("column", res.Caret.Column).
		Set("token", res.Position.Index).End(res.Position.Text)

	_, cs := trace.Start(ctx, trace.ScopePass, "collect")
	res.Candidates = Collect(sess.Tokens, res.Position.Index, opts.Collect)
	cs.Set("tokens", len(res.Candidates.Tokens)).Set("rules", len(res.Candidates.Rules)).End("")

	_, ss := trace.Start(ctx, trace.ScopePass, "synthesize")
	res.Suggestions = Synthesize(res.Candidates, sess.Tree, opts.Synth)
	ss.Set("suggestions", len(res.Suggestions)).End("")
	return res
}
