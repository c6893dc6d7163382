// Package intellisense turns a caret position inside a diagram into ranked
// completion suggestions.
//
// The pipeline is:
//
//	Resolve     caret -> token index, enclosing node and typed prefix
//	Collect     token index -> expected token kinds and preferred rules
//	Synthesize  candidates -> suggestions (class names, connectors, keywords)
//
// Every step is read-only over one session.Session; nothing is cached
// between requests.
package intellisense
