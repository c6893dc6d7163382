package diag

import (
	"umlsense/internal/source"
)

// DefaultSource labels diagnostics produced by the lexer, parser and title checks.
const DefaultSource = "PlantUML syntax checker"

type Note struct {
	Range source.Range
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Source   string
	Range    *source.Range
	Notes    []Note
}

func New(sev Severity, code Code, rng *source.Range, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Range:    rng,
		Message:  msg,
		Source:   DefaultSource,
	}
}

func NewError(code Code, rng *source.Range, msg string) Diagnostic {
	return New(SevError, code, rng, msg)
}

func NewWarning(code Code, rng *source.Range, msg string) Diagnostic {
	return New(SevWarning, code, rng, msg)
}

func (d Diagnostic) WithNote(rng source.Range, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Range: rng, Msg: msg})
	return d
}

// Anchored reports whether the diagnostic carries a range.
func (d Diagnostic) Anchored() bool {
	return d.Range != nil
}
