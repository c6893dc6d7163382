package token

// Kind represents the category of a diagram token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the diagram text.
	EOF

	// StartUml represents the '@startuml' marker.
	StartUml // @startuml
	// EndUml represents the '@enduml' marker.
	EndUml // @enduml
	// Newline terminates a statement line.
	Newline
	// WS is a run of spaces and tabs (hidden).
	WS
	// LineComment is a `'...` or `//...` comment up to the end of line (hidden).
	LineComment
	// BlockComment is a `/' ... '/` comment (hidden).
	BlockComment

	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface
	// KwAbstract represents the 'abstract' keyword.
	KwAbstract // abstract
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwImplements represents the 'implements' keyword.
	KwImplements // implements
	// KwTitle represents the 'title' keyword.
	KwTitle // title

	// StaticMod represents the '{static}' member modifier.
	StaticMod // {static}
	// AbstractMod represents the '{abstract}' member modifier.
	AbstractMod // {abstract}

	// Connector is a relationship arrow such as '-->', '<|..' or 'o--'.
	Connector

	Plus   // +
	Minus  // -
	Hash   // #
	Tilde  // ~
	Colon  // :
	Comma  // ,
	LParen // (
	RParen // )
	LCurly // {
	RCurly // }
	// LSquare and RSquare delimit array suffixes in type declarations.
	LSquare // [
	RSquare // ]
	// EmbedOpen opens an embedded sub-diagram.
	EmbedOpen // {{
	// EmbedClose closes an embedded sub-diagram.
	EmbedClose // }}

	// String is a double-quoted string.
	String
	// Stereotype is a `<<...>>` annotation.
	Stereotype
	// Ident represents an identifier.
	Ident
	// AnythingElse absorbs any character no other rule accepts.
	AnythingElse

	kindCount
)

// Channel separates syntax-relevant tokens from incidental ones.
type Channel uint8

const (
	// DefaultChannel carries tokens the parser sees.
	DefaultChannel Channel = iota
	// HiddenChannel carries whitespace and comments.
	HiddenChannel
)

func (c Channel) String() string {
	if c == HiddenChannel {
		return "hidden"
	}
	return "default"
}

// KindCount returns the number of defined kinds, Invalid included.
func KindCount() int { return int(kindCount) }

// String returns the symbolic name of the kind, or its literal name for
// anonymous kinds.
func (k Kind) String() string {
	if name := Vocab.SymbolicName(k); name != "" {
		return name
	}
	if lit := Vocab.LiteralName(k); lit != "" {
		return lit
	}
	return "INVALID"
}

// HiddenByDefault reports whether the lexer routes this kind to the hidden channel.
func (k Kind) HiddenByDefault() bool {
	switch k {
	case WS, LineComment, BlockComment:
		return true
	default:
		return false
	}
}
