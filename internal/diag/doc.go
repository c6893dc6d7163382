// Package diag defines the diagnostic model shared by the lexer, parser and
// document checks.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text, e.g. "missing '}' at '@enduml'".
//   - Source – the checker that produced the entry, shown by editors.
//   - Range – document range; nil when the finding cannot be anchored.
//
// Package diag does not perform formatting beyond the single-line short form
// (short.go) nor IO. Rendering lives in internal/diagfmt, collection and
// storage in internal/diagnose.
//
// # Emitting diagnostics
//
// Producers use a Reporter to decouple emission from storage. BagReporter
// aggregates into a Bag, which supports sorting, deduplication and a limit.
package diag
