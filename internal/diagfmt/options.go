package diagfmt

import (
	"errors"
	"strings"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, errors.New("unknown path mode " + s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8
	PathMode PathMode
	Width    uint8 // максимальная ширина строки, 0 - не ограничено
	// ShowNotes prints attached notes under the snippet.
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода на файл, 0 - без ограничений
	IncludeNotes bool
}

// Report bundles the diagnostics of one file for output.
type Report struct {
	// Path is used when Doc is nil, i.e. the file could not be read.
	Path        string
	Doc         *source.Document
	Diagnostics []diag.Diagnostic
	Cached      bool
	Err         error
}

// Counts returns the number of errors and warnings over all reports.
func Counts(reports []Report) (errs, warns int) {
	for _, r := range reports {
		if r.Err != nil {
			errs++
		}
		for _, d := range r.Diagnostics {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	return errs, warns
}
