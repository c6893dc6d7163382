package macro

import (
	"context"
	"strings"
	"testing"

	"umlsense/internal/intellisense"
	"umlsense/internal/source"
)

var macrosDoc = strings.Join([]string{
	"@startuml",
	"!define simple_macro",
	"!define params_macro(p1, p2) p1 --> p2",
	`!define params_defaults_macro(p1, color="#F58536") class p1 #color`,
	"!definelong params_overload_macro(p1, p2)",
	"p1 --> p2",
	"!enddefinelong",
	`!define params_overload_macro(p1, p2, color="#F58536") p1 --> p2 #color`,
	`!$prefix = "Acme"`,
	"!global $count = 3",
	"",
	"p",
	"params_overload_macro(",
	`params_overload_macro(A, B, "#F58536")`,
	"@enduml",
}, "\n")

func TestMacroProvider(t *testing.T) {
	doc := source.NewDocument("mem://macros.puml", macrosDoc)
	got, err := MacroProvider{}.Complete(context.Background(), doc, source.Position{Line: 11, Character: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ label, detail string }{
		{"params_defaults_macro", `params_defaults_macro(p1, color="#F58536")`},
		{"params_macro", "params_macro(p1, p2)"},
		{"params_overload_macro", "params_overload_macro(p1, p2) (+1 overload)"},
		{"simple_macro", "simple_macro"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d macros, got %+v", len(want), got)
	}
	for i, w := range want {
		if got[i].Label != w.label || got[i].Detail != w.detail || got[i].Kind != intellisense.KindMethod {
			t.Errorf("macro %d = %+v, want %s / %s", i, got[i], w.label, w.detail)
		}
	}
}

func TestMacroProviderOnlySeesEarlierLines(t *testing.T) {
	doc := source.NewDocument("mem://macros.puml", macrosDoc)
	got, _ := MacroProvider{}.Complete(context.Background(), doc, source.Position{Line: 2, Character: 0})
	if len(got) != 1 || got[0].Label != "simple_macro" {
		t.Fatalf("got %+v", got)
	}
}

func TestVariableProvider(t *testing.T) {
	doc := source.NewDocument("mem://macros.puml", macrosDoc)
	got, err := VariableProvider{}.Complete(context.Background(), doc, source.Position{Line: 11, Character: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0].Label != "$count" || got[0].Detail != "3" || got[0].Kind != intellisense.KindVariable {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Label != "$prefix" || got[1].Detail != `"Acme"` {
		t.Errorf("second = %+v", got[1])
	}
}

func TestSignatures(t *testing.T) {
	doc := source.NewDocument("mem://macros.puml", macrosDoc)
	tests := []struct {
		name       string
		pos        source.Position
		sig, param int
	}{
		{"at open paren", source.Position{Line: 12, Character: 22}, 0, 0},
		{"third argument", source.Position{Line: 13, Character: 28}, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			help, ok := Signatures(context.Background(), doc, tt.pos)
			if !ok {
				t.Fatal("expected signature help")
			}
			if help.ActiveSignature != tt.sig || help.ActiveParameter != tt.param {
				t.Fatalf("active = %d/%d, want %d/%d", help.ActiveSignature, help.ActiveParameter, tt.sig, tt.param)
			}
			if len(help.Signatures) != 2 ||
				help.Signatures[0].Label != "params_overload_macro(p1, p2)" ||
				help.Signatures[1].Label != `params_overload_macro(p1, p2, color="#F58536")` ||
				len(help.Signatures[1].Params) != 3 {
				t.Fatalf("signatures = %+v", help.Signatures)
			}
		})
	}

	if _, ok := Signatures(context.Background(), doc, source.Position{Line: 11, Character: 1}); ok {
		t.Fatal("no call at caret")
	}
}

func TestScanNewStyleDeclarations(t *testing.T) {
	text := strings.Join([]string{
		`!procedure $box($name, $color="red")`,
		"!function $double($x)",
		"!unquoted procedure SHOW(x)",
		"!local $tmp ?= 1",
		"!$tmp = 2",
		"not a !define at line start",
	}, "\n")

	var names []string
	for _, m := range Macros(text) {
		names = append(names, m.Detail())
	}
	if got := strings.Join(names, "|"); got != `$box($name, $color="red")|$double($x)|SHOW(x)` {
		t.Fatalf("macros = %s", got)
	}

	vars := Variables(text)
	if len(vars) != 1 || vars[0].Name != "$tmp" || vars[0].Value != "2" || vars[0].Scope != "" {
		t.Fatalf("variables = %+v", vars)
	}
}

func TestOpenCall(t *testing.T) {
	tests := []struct {
		line string
		name string
		arg  int
		ok   bool
	}{
		{"foo(", "foo", 0, true},
		{"foo (a, ", "foo", 1, true},
		{`foo("a,b", `, "foo", 1, true},
		{"foo(a, bar(x", "bar", 0, true},
		{"foo(a)", "", 0, false},
		{"(a, b", "", 0, false},
	}
	for _, tt := range tests {
		name, arg, ok := openCall(tt.line)
		if name != tt.name || arg != tt.arg || ok != tt.ok {
			t.Errorf("openCall(%q) = %q %d %v", tt.line, name, arg, ok)
		}
	}
}
