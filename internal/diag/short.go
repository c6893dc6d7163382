package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShort renders diagnostics of one document as stable
// "severity CODE path:line:col message" lines (1-based line/col).
// Un-anchored diagnostics are printed with 0:0.
func FormatShort(path string, diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	path = normalizePath(path)
	var b strings.Builder
	for i, d := range diags {
		line, col := 0, 0
		if d.Range != nil {
			line, col = d.Range.Start.Line+1, d.Range.Start.Character+1
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity.Label(), d.Code.ID(), path, line, col, sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
