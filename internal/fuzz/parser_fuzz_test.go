package fuzztests

import (
	"context"
	"testing"
	"time"

	"umlsense/internal/grammar"
	"umlsense/internal/session"
	"umlsense/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		for _, entry := range []grammar.RuleID{grammar.RuleUmlFile, grammar.RuleUml} {
			s := session.Parse(context.Background(), text, entry, session.Options{MaxErrors: 128})
			if err := testkit.CheckTreeInvariants(s.Tree, s.Tokens); err != nil {
				t.Fatalf("%s: %v\ninput: %q", entry, err, truncateForLog(text, 200))
			}
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Recovery that fails to consume a token would loop forever.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// edge cases around recovery
	f.Add([]byte("@startuml\nclass A {\n{\n{\n@enduml"))
	f.Add([]byte("@startuml\nclass A {\n  +f(\n}\n@enduml"))
	f.Add([]byte("@startuml\n{{\n{{\n@enduml"))
	f.Add([]byte("@startuml\nA --> \n--> B\n@enduml"))

	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = session.Parse(context.Background(), text, grammar.RuleUmlFile, session.Options{})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(text), truncateForLog(text, 200))
		}
	})
}
