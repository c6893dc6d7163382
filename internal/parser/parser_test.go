package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"umlsense/internal/cst"
	"umlsense/internal/grammar"
	"umlsense/internal/lexer"
	"umlsense/internal/parser"
	"umlsense/internal/token"
)

func parse(t *testing.T, src string, entry grammar.RuleID) parser.Result {
	t.Helper()
	toks := lexer.Tokenize(src, lexer.Options{})
	res := parser.Parse(toks, entry, parser.Options{})
	if res.Tree == nil {
		t.Fatalf("no tree for %q", src)
	}
	return res
}

func errorsSummary(errs []parser.SyntaxError) string {
	if len(errs) == 0 {
		return "<none>"
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = fmt.Sprintf("[%s] %s", e.Code.ID(), e.Message)
	}
	return strings.Join(lines, "; ")
}

func expectNoErrors(t *testing.T, res parser.Result) {
	t.Helper()
	if len(res.Errors) != 0 {
		t.Fatalf("expected no syntax errors, got %s\ntree: %s", errorsSummary(res.Errors), cst.Dump(res.Tree))
	}
}

func TestArbitraryText(t *testing.T) {
	res := parse(t, "lorem ipsum\ndolor\nsit amet", grammar.RuleUmlFile)
	expectNoErrors(t, res)
	if n := len(res.Tree.Rules(grammar.RuleUml)); n != 0 {
		t.Fatalf("expected no diagrams, got %d", n)
	}
}

func TestArbitraryTextAroundDiagram(t *testing.T) {
	src := strings.Join([]string{
		"",
		"lorem ipsum",
		"@startuml",
		"class Foo",
		"interface Bar",
		"@enduml",
		"dolor",
		"sit amet",
	}, "\n")
	res := parse(t, src, grammar.RuleUmlFile)
	expectNoErrors(t, res)
	umls := res.Tree.Rules(grammar.RuleUml)
	if len(umls) != 1 {
		t.Fatalf("expected 1 uml, got %d", len(umls))
	}
	diagrams := umls[0].Rules(grammar.RuleDiagram)
	if len(diagrams) != 1 {
		t.Fatalf("expected 1 diagram, got %d: %s", len(diagrams), cst.Dump(umls[0]))
	}
	if n := cst.Count(diagrams[0], grammar.RuleClassDeclaration); n != 2 {
		t.Fatalf("expected 2 declarations, got %d", n)
	}
}

func TestArbitraryTextInsideDiagram(t *testing.T) {
	src := strings.Join([]string{
		"",
		"@startuml",
		"This is not valid plantUml: but we don't care. The parser must be lenient.",
		"class Foo //We do care about this.",
		"We can have stuff after the class diagram: we'll ignore it.",
		"We can have blank lines:",
		"",
		`Or lines with the word "class" in them, like this.`,
		"The following is another class declaration:",
		"class Bar",
		"@enduml",
	}, "\n")
	res := parse(t, src, grammar.RuleUmlFile)
	expectNoErrors(t, res)
	umls := res.Tree.Rules(grammar.RuleUml)
	if len(umls) != 1 {
		t.Fatalf("expected 1 uml, got %d", len(umls))
	}
	diagrams := umls[0].Rules(grammar.RuleDiagram)
	if len(diagrams) != 2 {
		t.Fatalf("expected 2 diagrams, got %d: %s", len(diagrams), cst.Dump(umls[0]))
	}
	for i, d := range diagrams {
		if d.Rule1(grammar.RuleClassDiagram) == nil {
			t.Fatalf("diagram %d has no class_diagram", i)
		}
		if n := cst.Count(d, grammar.RuleClassDeclaration); n != 1 {
			t.Fatalf("diagram %d: expected 1 declaration, got %d", i, n)
		}
	}
}

func TestClassDeclaration(t *testing.T) {
	src := strings.Join([]string{
		"",
		"@startuml",
		"abstract class alias {",
		"    +{static} int PUBLIC_CLASS_VARIABLE",
		"    -string privateVariable",
		"    ~void packagePrivateMethod()",
		"    #{abstract} char protectedMethod(int param)",
		"}",
		"@enduml",
	}, "\n")
	res := parse(t, src, grammar.RuleUmlFile)
	expectNoErrors(t, res)
	umls := res.Tree.Rules(grammar.RuleUml)
	if len(umls) != 1 || len(umls[0].Rules(grammar.RuleDiagram)) != 1 {
		t.Fatalf("unexpected shape: %s", cst.Dump(res.Tree))
	}
	if n := cst.Count(res.Tree, grammar.RuleClassDeclaration); n != 1 {
		t.Fatalf("expected 1 declaration, got %d", n)
	}
	if n := cst.Count(res.Tree, grammar.RuleAttribute); n != 2 {
		t.Fatalf("expected 2 attributes, got %d", n)
	}
	if n := cst.Count(res.Tree, grammar.RuleMethod); n != 2 {
		t.Fatalf("expected 2 methods, got %d", n)
	}
}

func TestTrailingCommentEndsAttribute(t *testing.T) {
	src := strings.Join([]string{
		"@startuml",
		"class A {",
		"  +int x ' the x",
		"  -int y",
		"  +run() : void",
		"}",
		"@enduml",
	}, "\n")
	res := parse(t, src, grammar.RuleUml)
	expectNoErrors(t, res)
	if n := cst.Count(res.Tree, grammar.RuleAttribute); n != 2 {
		t.Fatalf("expected 2 attributes, got %d: %s", n, cst.Dump(res.Tree))
	}
	if n := cst.Count(res.Tree, grammar.RuleMethod); n != 1 {
		t.Fatalf("expected 1 method, got %d", n)
	}
}

func TestEmptyDiagram(t *testing.T) {
	for _, entry := range []grammar.RuleID{grammar.RuleUml, grammar.RuleUmlFile} {
		res := parse(t, "@startuml\n@enduml", entry)
		expectNoErrors(t, res)
	}
}

func TestMissingClosingBrace(t *testing.T) {
	src := "@startuml\nclass A {\n  +int x\n@enduml"
	res := parse(t, src, grammar.RuleUml)
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error, got %s", errorsSummary(res.Errors))
	}
	if got := res.Errors[0].Message; got != "missing '}' at '@enduml'" {
		t.Fatalf("message = %q", got)
	}
	if res.Errors[0].Token == nil || res.Errors[0].Token.Kind != token.EndUml {
		t.Fatalf("offending token = %v", res.Errors[0].Token)
	}
	if n := cst.Count(res.Tree, grammar.RuleClassDeclaration); n != 1 {
		t.Fatalf("class must still be recognised, got %d", n)
	}
}

func TestRecoveryKeepsLaterDeclarations(t *testing.T) {
	src := strings.Join([]string{
		"@startuml",
		"class A {",
		"  +foo(int a b",
		"}",
		"class B",
		"@enduml",
	}, "\n")
	res := parse(t, src, grammar.RuleUml)
	if len(res.Errors) != 1 || res.Errors[0].Message != "mismatched input 'b' expecting ')'" {
		t.Fatalf("unexpected errors: %s", errorsSummary(res.Errors))
	}
	if n := cst.Count(res.Tree, grammar.RuleClassDeclaration); n != 2 {
		t.Fatalf("expected 2 declarations, got %d: %s", n, cst.Dump(res.Tree))
	}
	if errs := cst.Errors(res.Tree); len(errs) != 1 || errs[0].Text != "b" {
		t.Fatalf("expected 'b' as error node, got %v", errs)
	}
}

func TestExtraneousInput(t *testing.T) {
	src := "@startuml\nclass A {\n  +foo(int a b)\n}\n@enduml"
	res := parse(t, src, grammar.RuleUml)
	if len(res.Errors) != 1 || res.Errors[0].Message != "extraneous input 'b' expecting ')'" {
		t.Fatalf("unexpected errors: %s", errorsSummary(res.Errors))
	}
}

func TestMissingEndMarker(t *testing.T) {
	res := parse(t, "@startuml\nclass A\n", grammar.RuleUml)
	if len(res.Errors) != 1 || res.Errors[0].Message != "missing '@enduml' at '<EOF>'" {
		t.Fatalf("unexpected errors: %s", errorsSummary(res.Errors))
	}
}

func TestEmbeddedDiagram(t *testing.T) {
	src := strings.Join([]string{
		"@startuml",
		"{{",
		"class Inner",
		"}}",
		"class Outer",
		"Inner --> Outer : uses",
		"@enduml",
	}, "\n")
	res := parse(t, src, grammar.RuleUml)
	expectNoErrors(t, res)
	if n := cst.Count(res.Tree, grammar.RuleEmbeddedDiagram); n != 1 {
		t.Fatalf("expected 1 embedded diagram, got %d", n)
	}
	if n := cst.Count(res.Tree, grammar.RuleClassDeclaration); n != 2 {
		t.Fatalf("expected 2 declarations, got %d", n)
	}
	if n := cst.Count(res.Tree, grammar.RuleConnection); n != 1 {
		t.Fatalf("expected 1 connection, got %d", n)
	}
}

func TestInheritanceAndStereotype(t *testing.T) {
	src := "@startuml\nclass A <<Entity>> extends B, C implements D {\n}\n@enduml"
	res := parse(t, src, grammar.RuleUml)
	expectNoErrors(t, res)
	if n := cst.Count(res.Tree, grammar.RuleClassName); n != 3 {
		t.Fatalf("expected 3 class_name refs, got %d: %s", n, cst.Dump(res.Tree))
	}
	if n := cst.Count(res.Tree, grammar.RuleStereotype); n != 1 {
		t.Fatalf("expected stereotype, got %d", n)
	}
}

func TestMaxErrors(t *testing.T) {
	src := "@startuml\nclass A {\n+a(x y\n+b(x y\n+c(x y\n}\n@enduml"
	toks := lexer.Tokenize(src, lexer.Options{})
	res := parser.Parse(toks, grammar.RuleUml, parser.Options{MaxErrors: 2})
	if len(res.Errors) != 2 {
		t.Fatalf("expected errors capped at 2, got %s", errorsSummary(res.Errors))
	}
}

func TestTreeSpansCoverChildren(t *testing.T) {
	res := parse(t, "@startuml\nclass A\nA --> B\n@enduml", grammar.RuleUml)
	cst.Walk(res.Tree, func(n cst.Node) bool {
		r, ok := n.(*cst.RuleNode)
		if !ok || r.Start == nil {
			return true
		}
		prev := -1
		for _, c := range r.Children {
			s, e := c.Bounds()
			if s == nil {
				continue
			}
			if s.Index <= prev || s.Index < r.Start.Index || e.Index > r.Stop.Index {
				t.Fatalf("child %s out of order in %s", cst.Dump(c), cst.Dump(r))
			}
			prev = e.Index
		}
		return true
	})
}
