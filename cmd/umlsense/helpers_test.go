package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"umlsense/internal/diag"
	"umlsense/internal/diagfmt"
	"umlsense/internal/grammar"
	"umlsense/internal/session"
	"umlsense/internal/version"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestUseProgressUI(t *testing.T) {
	if !useProgressUI(uiModeOn, "pretty") {
		t.Error("--ui=on with pretty output should show the view")
	}
	if useProgressUI(uiModeOn, "json") || useProgressUI(uiModeOn, "short") {
		t.Error("machine formats never show the view")
	}
	if useProgressUI(uiModeOff, "pretty") {
		t.Error("--ui=off must disable the view")
	}
}

func TestPrintSessionErrors(t *testing.T) {
	text := strings.Join([]string{
		"@startuml",
		"class A {",
		"@enduml",
	}, "\n")
	sess := session.Parse(context.Background(), text, grammar.RuleUml, session.Options{})

	var buf bytes.Buffer
	printSessionErrors(&buf, "a.puml", sess.Errors)
	want := "a.puml:3:1: parser SYN2001: missing '}' at '@enduml'\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintSummary(t *testing.T) {
	reports := []diagfmt.Report{
		{Path: "a.puml", Diagnostics: []diag.Diagnostic{diag.NewWarning(diag.SemaMissingTitle, nil, "no title")}, Cached: true},
		{Path: "b.puml", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	printSummary(&buf, reports)
	if got := buf.String(); got != "1 errors, 1 warnings in 2 files (1 cached)\n" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := version.Info{Version: "1.2.3", GitCommit: "abc"}
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true, showDate: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "umlsense" || payload.Version != "1.2.3" || payload.GitCommit != "abc" || payload.BuildDate != "unknown" {
		t.Errorf("unexpected payload %+v", payload)
	}
	if payload.GitMessage != "" {
		t.Errorf("message should be omitted, got %q", payload.GitMessage)
	}
}
