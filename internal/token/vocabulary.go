package token

import "strings"

// Vocabulary maps token kinds to their symbolic and literal names.
// It is immutable after package initialisation.
type Vocabulary struct {
	symbolic [kindCount]string
	literal  [kindCount]string
}

// Vocab is the process-wide vocabulary of the diagram grammar.
var Vocab = newVocabulary()

func newVocabulary() *Vocabulary {
	v := &Vocabulary{}
	sym := map[Kind]string{
		EOF:          "EOF",
		StartUml:     "STARTUML",
		EndUml:       "ENDUML",
		Newline:      "NEWLINE",
		WS:           "WS",
		LineComment:  "LINE_COMMENT",
		BlockComment: "BLOCK_COMMENT",
		KwClass:      "CLASS",
		KwInterface:  "INTERFACE",
		KwAbstract:   "ABSTRACT",
		KwEnum:       "ENUM",
		KwExtends:    "EXTENDS",
		KwImplements: "IMPLEMENTS",
		KwTitle:      "TITLE",
		StaticMod:    "STATIC_MOD",
		AbstractMod:  "ABSTRACT_MOD",
		Connector:    "CONNECTOR",
		Colon:        "COLON",
		Comma:        "COMMA",
		LParen:       "LPAREN",
		RParen:       "RPAREN",
		LCurly:       "LCURLY",
		RCurly:       "RCURLY",
		LSquare:      "LSQUARE",
		RSquare:      "RSQUARE",
		String:       "STRING",
		Stereotype:   "STEREOTYPE",
		Ident:        "IDENT",
		AnythingElse: "ANYTHING_ELSE",
	}
	// visibility markers and embed braces are anonymous: literal only
	lit := map[Kind]string{
		StartUml:     "@startuml",
		EndUml:       "@enduml",
		KwClass:      "class",
		KwInterface:  "interface",
		KwAbstract:   "abstract",
		KwEnum:       "enum",
		KwExtends:    "extends",
		KwImplements: "implements",
		KwTitle:      "title",
		StaticMod:    "{static}",
		AbstractMod:  "{abstract}",
		Plus:         "+",
		Minus:        "-",
		Hash:         "#",
		Tilde:        "~",
		Colon:        ":",
		Comma:        ",",
		LParen:       "(",
		RParen:       ")",
		LCurly:       "{",
		RCurly:       "}",
		LSquare:      "[",
		RSquare:      "]",
		EmbedOpen:    "{{",
		EmbedClose:   "}}",
	}
	for k, s := range sym {
		v.symbolic[k] = s
	}
	for k, s := range lit {
		v.literal[k] = "'" + s + "'"
	}
	return v
}

// SymbolicName returns the grammar name of k, or "" for anonymous kinds.
func (v *Vocabulary) SymbolicName(k Kind) string {
	if k >= kindCount {
		return ""
	}
	return v.symbolic[k]
}

// LiteralName returns the quoted fixed spelling of k, or "" when k has none.
func (v *Vocabulary) LiteralName(k Kind) string {
	if k >= kindCount {
		return ""
	}
	return v.literal[k]
}

// DisplayName prefers the literal name and falls back to the symbolic one.
func (v *Vocabulary) DisplayName(k Kind) string {
	if lit := v.LiteralName(k); lit != "" {
		return lit
	}
	if sym := v.SymbolicName(k); sym != "" {
		return sym
	}
	return "<INVALID>"
}

// Escape renders control characters visible, as in error messages.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	r := strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}
