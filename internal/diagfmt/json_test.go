package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	r := missingBraceReport(t, fs, "/tmp/diagrams/test.puml")
	rng := source.Range{Start: source.Position{Line: 1}, End: source.Position{Line: 1, Character: 9}}
	d := diag.NewWarning(diag.SemaMissingTitle, &rng, "no title").WithNote(rng, "declared here")
	r.Diagnostics = append(r.Diagnostics, d)

	var buf bytes.Buffer
	if err := JSON(&buf, fs, []Report{r}, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || output.Errors != 1 || output.Warnings != 1 {
		t.Errorf("count=%d errors=%d warnings=%d", output.Count, output.Errors, output.Warnings)
	}
	if len(output.Files) != 1 || output.Files[0].File != "test.puml" {
		t.Fatalf("unexpected files: %+v", output.Files)
	}

	first := output.Files[0].Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "SYN2001" || first.Source != diag.DefaultSource {
		t.Errorf("unexpected diagnostic: %+v", first)
	}
	want := LocationJSON{StartLine: 3, StartCol: 1, EndLine: 3, EndCol: 8}
	if first.Location == nil || *first.Location != want {
		t.Errorf("location = %+v, want %+v", first.Location, want)
	}

	second := output.Files[0].Diagnostics[1]
	if len(second.Notes) != 1 || second.Notes[0].Message != "declared here" {
		t.Errorf("notes = %+v", second.Notes)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	r := missingBraceReport(t, fs, "test.puml")
	rng := source.Range{}
	r.Diagnostics = append(r.Diagnostics, diag.NewError(diag.SynExtraneousInput, nil, "extra").WithNote(rng, "n"))
	r.Diagnostics[0] = r.Diagnostics[0].WithNote(rng, "hidden")

	out := BuildDiagnosticsOutput(fs, []Report{r}, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("Max not applied: count=%d", out.Count)
	}
	if out.Errors != 2 {
		t.Errorf("errors should count every diagnostic, got %d", out.Errors)
	}
	if n := out.Files[0].Diagnostics[0].Notes; n != nil {
		t.Errorf("notes should be omitted, got %+v", n)
	}
}

func TestJSONUnanchoredAndFailed(t *testing.T) {
	reports := []Report{
		{Path: "broken.puml", Err: errors.New("boom")},
		{Path: "ok.puml", Diagnostics: []diag.Diagnostic{diag.NewWarning(diag.SemaMissingTitle, nil, "no title")}, Cached: true},
	}
	out := BuildDiagnosticsOutput(nil, reports, JSONOpts{PathMode: PathModeBasename})

	if out.Files[0].Error != "boom" || len(out.Files[0].Diagnostics) != 0 {
		t.Errorf("failed file = %+v", out.Files[0])
	}
	if !out.Files[1].Cached || out.Files[1].Diagnostics[0].Location != nil {
		t.Errorf("cached file = %+v", out.Files[1])
	}
	if out.Errors != 1 || out.Warnings != 1 {
		t.Errorf("errors=%d warnings=%d", out.Errors, out.Warnings)
	}
}
