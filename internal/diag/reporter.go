package diag

import "umlsense/internal/source"

// Reporter — минимальный контракт получения диагностик от проверок.
type Reporter interface {
	Report(code Code, sev Severity, rng *source.Range, msg string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, rng *source.Range, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, rng, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, rng *source.Range, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, rng, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, rng *source.Range, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, rng, msg)
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(rng source.Range, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(rng, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag.Code, b.diag.Severity, b.diag.Range, b.diag.Message, b.diag.Notes)
	}
	b.emitted = true
}

// BagReporter — адаптер, который пишет в *Bag. Source overrides DefaultSource when set.
type BagReporter struct {
	Bag    *Bag
	Source string
}

func (r BagReporter) Report(code Code, sev Severity, rng *source.Range, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, rng, msg)
	d.Notes = notes
	if r.Source != "" {
		d.Source = r.Source
	}
	r.Bag.Add(d)
}
