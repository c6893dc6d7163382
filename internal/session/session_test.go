package session

import (
	"context"
	"testing"

	"umlsense/internal/diag"
	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

func TestParseCollectsBothStages(t *testing.T) {
	text := "@startuml\nclass A {\n\"open\n@enduml\n/' never closed"
	s := Parse(context.Background(), text, grammar.RuleUml, Options{})

	lex := s.ErrorsOf(StageLexer)
	if len(lex) != 2 {
		t.Fatalf("expected 2 lexer errors, got %+v", lex)
	}
	if lex[0].Code != diag.LexUnterminatedString || lex[0].Token == nil || lex[0].Token.Text != "\"open" {
		t.Fatalf("unexpected first lexer error %+v", lex[0])
	}
	if lex[1].Code != diag.LexUnterminatedBlockComment || lex[1].Token == nil || lex[1].Token.Kind != token.BlockComment {
		t.Fatalf("unexpected second lexer error %+v", lex[1])
	}
	if len(s.ErrorsOf(StageParser)) == 0 {
		t.Fatal("expected parser errors for unclosed class body")
	}
	if s.Vocabulary != token.Vocab || s.Tree == nil {
		t.Fatal("session must expose vocabulary and tree")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	text := "@startuml\nclass A\n@enduml"
	a := Parse(context.Background(), text, grammar.RuleUml, Options{})
	b := Parse(context.Background(), text, grammar.RuleUml, Options{})
	if &a.Tokens[0] == &b.Tokens[0] {
		t.Fatal("sessions must not share token storage")
	}
	if len(a.Errors) != 0 || len(b.Errors) != 0 {
		t.Fatalf("unexpected errors %v %v", a.Errors, b.Errors)
	}
	dt := a.DefaultTokens()
	if len(dt) != 7 || dt[len(dt)-1].Kind != token.EOF {
		t.Fatalf("default tokens = %v", dt)
	}
}
