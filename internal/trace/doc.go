// Package trace records what the completion and diagnostics pipelines do
// to each document.
//
// Events carry the document URI and, inside a diagram, the block index and
// title, so a trace of a directory run can be filtered per diagram. Spans
// attach integer fields (token counts, resolved token index, candidate
// counts) instead of free-form strings.
//
//	umlsense diag --trace=run.ndjson --trace-level=detail docs/
//
// LevelPhase keeps ScopeDriver and ScopePass events, LevelDetail adds
// ScopeDiagram, LevelDebug adds ScopeNode.
//
// Spans nest through the context:
//
//	ctx = trace.WithDocument(ctx, doc.URI)
//	ctx, sp := trace.Start(ctx, trace.ScopePass, "parse")
//	...
//	sp.Set("errors", len(errs)).End("")
package trace
