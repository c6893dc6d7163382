package diagram

import (
	"context"
	"strings"
	"testing"

	"umlsense/internal/source"
)

func doc(lines ...string) *source.Document {
	return source.NewDocument("file:///work/classes.puml", strings.Join(lines, "\n"))
}

func TestLocateAllNoDelimiters(t *testing.T) {
	d := doc("lorem ipsum", "dolor", "sit amet")
	if got := LocateAll(context.Background(), d); len(got) != 0 {
		t.Fatalf("expected no blocks, got %v", got)
	}
}

func TestLocateAllTitles(t *testing.T) {
	d := doc(
		"intro",
		"@startuml first",
		"class A",
		"@enduml",
		"between",
		"  @startuml",
		"title Second one",
		"@enduml",
		"@startuml",
		"class C",
		"@enduml",
	)
	blocks := LocateAll(context.Background(), d)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	tests := []struct {
		start, end int
		title      string
		declared   bool
	}{
		{1, 3, "first", true},
		{5, 7, "Second one", true},
		{8, 10, "classes-2", false},
	}
	for i, tt := range tests {
		b := blocks[i]
		if b.Start.Line != tt.start || b.Start.Character != 0 || b.End.Line != tt.end {
			t.Errorf("block %d: range %s-%s", i, b.Start, b.End)
		}
		if b.Title != tt.title || b.TitleDeclared != tt.declared {
			t.Errorf("block %d: title %q declared=%v", i, b.Title, b.TitleDeclared)
		}
		if b.Content != d.Slice(b.Range()) {
			t.Errorf("block %d: content does not match document slice", i)
		}
		if !strings.HasSuffix(b.Content, "@enduml") {
			t.Errorf("block %d: content should end with the end marker: %q", i, b.Content)
		}
	}
}

func TestLocateAllUnterminated(t *testing.T) {
	d := doc("@startuml", "class A", "")
	blocks := LocateAll(context.Background(), d)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].End != d.End() {
		t.Fatalf("unterminated block should run to the end, got %s", blocks[0].End)
	}
}

func TestLocateAllInlineMarkerIgnored(t *testing.T) {
	d := doc("see @startuml in prose", "nothing @enduml here")
	if got := LocateAll(context.Background(), d); len(got) != 0 {
		t.Fatalf("inline markers must not open a block: %v", got)
	}
}

func TestLocate(t *testing.T) {
	d := doc("text", "@startuml", "class A", "@enduml", "tail")
	ctx := context.Background()

	b := Locate(ctx, d, source.Position{Line: 2, Character: 3})
	if b.Empty() || b.Start.Line != 1 {
		t.Fatalf("expected enclosing block, got %v", b)
	}
	if c := b.Caret(source.Position{Line: 2, Character: 3}); c.Line != 2 || c.Column != 3 {
		t.Fatalf("caret = %+v", c)
	}

	out := Locate(ctx, d, source.Position{Line: 4, Character: 2})
	if !out.Empty() || out.Content != "" || out.Start != (source.Position{Line: 4, Character: 2}) {
		t.Fatalf("expected degenerate block, got %+v", out)
	}
}

func TestToDocument(t *testing.T) {
	b := Block{Start: source.Position{Line: 3, Character: 2}}
	if got := b.ToDocument(1, 4); got != (source.Position{Line: 3, Character: 6}) {
		t.Fatalf("first line: %v", got)
	}
	if got := b.ToDocument(3, 4); got != (source.Position{Line: 5, Character: 4}) {
		t.Fatalf("later line: %v", got)
	}
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///a/b/seq.puml", "seq-0"},
		{`C:\docs\model.wsd`, "model-0"},
		{"", "untitled-0"},
	}
	for _, tt := range tests {
		if got := fallbackTitle(tt.uri, 0); got != tt.want {
			t.Errorf("fallbackTitle(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestEmbeddedTitleIgnored(t *testing.T) {
	d := doc(
		"@startuml",
		"class Outer",
		"{{",
		"title Inner",
		"class Nested",
		"}}",
		"@enduml",
		"@startuml",
		"{{ class X }}",
		"title Outer",
		"@enduml",
	)
	blocks := LocateAll(context.Background(), d)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].TitleDeclared || blocks[0].Title != "classes-0" {
		t.Errorf("embedded title leaked into the container: %q declared=%v", blocks[0].Title, blocks[0].TitleDeclared)
	}
	if !blocks[1].TitleDeclared || blocks[1].Title != "Outer" {
		t.Errorf("title after a closed embed: %q declared=%v", blocks[1].Title, blocks[1].TitleDeclared)
	}
}
