package diag

import "umlsense/internal/source"

type dedupKey struct {
	sev   Severity
	rng   source.Range
	bound bool
	msg   string
}

// DedupReporter forwards a diagnostic only the first time its severity,
// range and message are seen. The code is not part of the key: a lexer and
// a parser complaining identically about the same token yield one
// diagnostic carrying the first code.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, rng *source.Range, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{sev: sev, msg: msg}
	if rng != nil {
		key.rng, key.bound = *rng, true
	}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, rng, msg, notes)
	}
}
