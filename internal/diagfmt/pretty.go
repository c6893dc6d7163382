package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes human readable diagnostics with a source snippet and a
// caret underline for every anchored diagnostic.
func Pretty(w io.Writer, fs *source.FileSet, reports []Report, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, r := range reports {
		path := reportPath(fs, r, opts.PathMode)
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %s %v\n", pal.path.Sprint(path), pal.err.Sprint("ERROR"), r.Err)
			continue
		}
		for _, d := range r.Diagnostics {
			prettyOne(w, pal, path, r.Doc, d, opts)
		}
	}
}

func prettyOne(w io.Writer, pal palette, path string, doc *source.Document, d diag.Diagnostic, opts PrettyOpts) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	if d.Range == nil || doc == nil {
		fmt.Fprintf(w, "%s: %s %s: %s\n", pal.path.Sprint(path), sev, d.Code.ID(), d.Message)
		return
	}
	rng := *d.Range
	fmt.Fprintf(w, "%s:%s: %s %s: %s\n", pal.path.Sprint(path), rng.Start, sev, d.Code.ID(), d.Message)
	snippet(w, pal, doc, rng, opts)
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), n.Range.Start, n.Msg)
		}
	}
}

func snippet(w io.Writer, pal palette, doc *source.Document, rng source.Range, opts PrettyOpts) {
	ctxLines := max(int(opts.Context), 0)
	first := max(rng.Start.Line-ctxLines, 0)
	last := min(rng.Start.Line+ctxLines, doc.LineCount()-1)
	gw := len(fmt.Sprint(last + 1))

	for ln := first; ln <= last; ln++ {
		text := expandTabs(doc.Line(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, ln+1), text)
		if ln != rng.Start.Line {
			continue
		}
		pad, width := underline(doc.Line(ln), rng)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
	}
}

// underline returns the display offset and width of the caret marks for
// rng on its first line. Ranges spanning lines stop at the line end.
func underline(line string, rng source.Range) (pad, width int) {
	runes := []rune(line)
	start := min(rng.Start.Character, len(runes))
	end := len(runes)
	if rng.End.Line == rng.Start.Line {
		end = min(max(rng.End.Character, start), len(runes))
	}
	pad = runewidth.StringWidth(expandTabs(string(runes[:start])))
	width = runewidth.StringWidth(expandTabs(string(runes[:end]))) - pad
	return pad, max(width, 1)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
