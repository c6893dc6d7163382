package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// Парсерные
	SynMissingToken    Code = 2001
	SynExtraneousInput Code = 2002
	SynMismatchedInput Code = 2003
	SynNoViableAlt     Code = 2004

	// Документные проверки
	SemaMissingTitle   Code = 3001
	SemaDuplicateTitle Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	SynMissingToken:             "Missing token",
	SynExtraneousInput:          "Extraneous input",
	SynMismatchedInput:          "Mismatched input",
	SynNoViableAlt:              "No viable alternative",
	SemaMissingTitle:            "Diagram has no title",
	SemaDuplicateTitle:          "Duplicate diagram title",
}

func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
