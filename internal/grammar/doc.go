// Package grammar holds the diagram grammar as immutable data.
//
// Rule bodies are expressions over token kinds and rule references. The
// same tables drive the tolerant parser and the completion candidate
// collector, so both always agree on what is syntactically valid.
package grammar
