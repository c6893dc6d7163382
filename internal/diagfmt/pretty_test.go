package diagfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

func missingBraceReport(t *testing.T, fs *source.FileSet, uri string) Report {
	t.Helper()
	text := strings.Join([]string{
		"@startuml",
		"class A {",
		"@enduml",
	}, "\n")
	doc := fs.Get(fs.AddVirtual(uri, text))
	rng := source.Range{Start: source.Position{Line: 2}, End: source.Position{Line: 2, Character: 7}}
	d := diag.NewError(diag.SynMissingToken, &rng, "missing '}' at '@enduml'")
	return Report{Doc: doc, Diagnostics: []diag.Diagnostic{d}}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	r := missingBraceReport(t, fs, "/home/user/project/src/test.puml")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.puml:3:1:"},
		{"Relative path", PathModeRelative, "\nsrc/test.puml:3:1:"},
		{"Basename only", PathModeBasename, "\ntest.puml:3:1:"},
		{"Auto keeps short path", PathModeAuto, "/home/user/project/src/test.puml:3:1:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, fs, []Report{r}, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := "\n" + buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SYN2001: missing '}' at '@enduml'") {
				t.Errorf("header missing, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	r := missingBraceReport(t, fs, "test.puml")

	var buf bytes.Buffer
	Pretty(&buf, fs, []Report{r}, PrettyOpts{Context: 1})
	want := strings.Join([]string{
		"test.puml:3:1: ERROR SYN2001: missing '}' at '@enduml'",
		"2 | class A {",
		"3 | @enduml",
		"  | ^~~~~~~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNoColorEscapes(t *testing.T) {
	fs := source.NewFileSet()
	r := missingBraceReport(t, fs, "test.puml")

	var plain, colored bytes.Buffer
	Pretty(&plain, fs, []Report{r}, PrettyOpts{})
	Pretty(&colored, fs, []Report{r}, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored.String())
	}
}

func TestPrettyUnanchoredAndFailedFiles(t *testing.T) {
	fs := source.NewFileSet()
	doc := fs.Get(fs.AddVirtual("a.puml", "@startuml\n@enduml"))
	reports := []Report{
		{Doc: doc, Diagnostics: []diag.Diagnostic{diag.NewWarning(diag.SemaMissingTitle, nil, "no title")}},
		{Path: "b.puml", Err: errors.New("permission denied")},
	}

	var buf bytes.Buffer
	Pretty(&buf, fs, reports, PrettyOpts{})
	want := strings.Join([]string{
		"a.puml: WARNING SEM3001: no title",
		"b.puml: ERROR permission denied",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnderline(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		rng       source.Range
		pad, wide int
	}{
		{
			name: "ascii",
			line: "class Foo",
			rng:  source.Range{Start: source.Position{Character: 6}, End: source.Position{Character: 9}},
			pad:  6, wide: 3,
		},
		{
			name: "wide runes",
			line: "class 日本 x",
			rng:  source.Range{Start: source.Position{Character: 9}, End: source.Position{Character: 10}},
			pad:  11, wide: 1,
		},
		{
			name: "tab",
			line: "\tfoo",
			rng:  source.Range{Start: source.Position{Character: 1}, End: source.Position{Character: 4}},
			pad:  4, wide: 3,
		},
		{
			name: "empty range",
			line: "class",
			rng:  source.Range{Start: source.Position{Character: 5}, End: source.Position{Character: 5}},
			pad:  5, wide: 1,
		},
		{
			name: "multi-line stops at line end",
			line: "\"abc",
			rng:  source.Range{Start: source.Position{Character: 0}, End: source.Position{Line: 2, Character: 1}},
			pad:  0, wide: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pad, wide := underline(tt.line, tt.rng)
			if pad != tt.pad || wide != tt.wide {
				t.Errorf("underline(%q) = %d,%d; want %d,%d", tt.line, pad, wide, tt.pad, tt.wide)
			}
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"":         PathModeAuto,
		"abs":      PathModeAbsolute,
		"Relative": PathModeRelative,
		"basename": PathModeBasename,
	} {
		got, err := ParsePathMode(in)
		if err != nil || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
