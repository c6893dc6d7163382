package diagfmt

import (
	"encoding/json"
	"io"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

// LocationJSON представляет местоположение в файле; строки и колонки с единицы
type LocationJSON struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Source   string        `json:"source,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// FileJSON groups the diagnostics of one file.
type FileJSON struct {
	File        string           `json:"file"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Cached      bool             `json:"cached,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files    []FileJSON `json:"files"`
	Count    int        `json:"count"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
}

func makeLocation(r source.Range) LocationJSON {
	return LocationJSON{
		StartLine: r.Start.Line + 1,
		StartCol:  r.Start.Character + 1,
		EndLine:   r.End.Line + 1,
		EndCol:    r.End.Character + 1,
	}
}

func makeDiagnostic(d diag.Diagnostic, includeNotes bool) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Source:   d.Source,
	}
	if d.Range != nil {
		loc := makeLocation(*d.Range)
		out.Location = &loc
	}
	if includeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for i, n := range d.Notes {
			out.Notes[i] = NoteJSON{Message: n.Msg, Location: makeLocation(n.Range)}
		}
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(fs *source.FileSet, reports []Report, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(reports))}
	for _, r := range reports {
		items := r.Diagnostics
		if opts.Max > 0 && opts.Max < len(items) {
			items = items[:opts.Max]
		}
		f := FileJSON{
			File:        reportPath(fs, r, opts.PathMode),
			Diagnostics: make([]DiagnosticJSON, 0, len(items)),
			Cached:      r.Cached,
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		for _, d := range items {
			f.Diagnostics = append(f.Diagnostics, makeDiagnostic(d, opts.IncludeNotes))
		}
		out.Count += len(f.Diagnostics)
		out.Files = append(out.Files, f)
	}
	out.Errors, out.Warnings = Counts(reports)
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, fs *source.FileSet, reports []Report, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(fs, reports, opts))
}
