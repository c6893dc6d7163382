package fuzztests

import (
	"testing"

	"umlsense/internal/lexer"
	"umlsense/internal/source"
	"umlsense/internal/testkit"
)

type countingReporter struct{ n int }

func (r *countingReporter) Report(string, source.Span, string) { r.n++ }

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		toks := lexer.Tokenize(text, lexer.Options{Reporter: &countingReporter{}})
		if err := testkit.CheckTokenInvariants(text, toks); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(text, 200))
		}
	})
}
