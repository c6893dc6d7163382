package diagram

import (
	"context"
	"regexp"
	"strings"

	"umlsense/internal/source"
	"umlsense/internal/trace"
)

var (
	startRe = regexp.MustCompile(`(?m)^[ \t]*@startuml\b([^\r\n]*)`)
	endRe   = regexp.MustCompile(`(?m)^[ \t]*@enduml\b`)
	titleRe = regexp.MustCompile(`^[ \t]*title[ \t]+([^\r\n]+)`)
)

// LocateAll returns every top-level block of doc in document order.
// Blocks never overlap: the scan for the next start marker resumes after
// the previous end marker. A block without an end marker runs to the end of
// the document.
func LocateAll(ctx context.Context, doc *source.Document) []Block {
	_, sp := trace.Start(trace.WithDocument(ctx, doc.URI), trace.ScopePass, "locate")
	blocks := scan(doc)
	sp.Set("lines", doc.LineCount()).Set("blocks", len(blocks)).End("")
	return blocks
}

// Locate returns the block enclosing pos, or a degenerate empty block at pos
// when the position lies outside every diagram.
func Locate(ctx context.Context, doc *source.Document, pos source.Position) Block {
	for _, b := range LocateAll(ctx, doc) {
		if b.Range().Contains(pos) {
			return b
		}
		if pos.Before(b.Start) {
			break
		}
	}
	return degenerate(pos)
}

func scan(doc *source.Document) []Block {
	text := doc.Text
	var blocks []Block
	off := 0
	for off <= len(text) {
		loc := startRe.FindStringSubmatchIndex(text[off:])
		if loc == nil {
			break
		}
		lineStart := off + loc[0]
		arg := text[off+loc[2] : off+loc[3]]
		bodyFrom := off + loc[1]

		end := len(text)
		next := len(text)
		if e := endRe.FindStringIndex(text[bodyFrom:]); e != nil {
			end = bodyFrom + e[1]
			next = end
		}

		content := text[lineStart:end]
		b := Block{
			Start:   doc.PositionAt(lineStart),
			End:     doc.PositionAt(end),
			Content: content,
			Index:   len(blocks),
		}
		b.Title, b.TitleDeclared = titleOf(arg, content)
		if !b.TitleDeclared {
			b.Title = fallbackTitle(doc.URI, b.Index)
		}
		blocks = append(blocks, b)

		off = next
	}
	return blocks
}

// titleOf takes the @startuml argument first, then a `title` line.
func titleOf(arg, content string) (string, bool) {
	if t := cleanTitle(arg); t != "" {
		return t, true
	}
	if t := topLevelTitle(content); t != "" {
		return t, true
	}
	return "", false
}

// topLevelTitle returns the first non-empty title line that is not inside an
// embedded {{ ... }} sub-diagram.
func topLevelTitle(content string) string {
	depth := 0
	for _, line := range strings.Split(content, "\n") {
		if depth == 0 {
			if m := titleRe.FindStringSubmatch(line); m != nil {
				if t := cleanTitle(m[1]); t != "" {
					return t
				}
			}
		}
		depth += strings.Count(line, "{{") - strings.Count(line, "}}")
		depth = max(depth, 0)
	}
	return ""
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
