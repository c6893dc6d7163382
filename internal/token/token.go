package token

import (
	"fmt"
	"unicode/utf8"

	"umlsense/internal/source"
)

// Token is a single lexed token of a diagram text.
type Token struct {
	Index   int // position in the stream
	Kind    Kind
	Text    string
	Line    int // 1-based
	Column  int // 0-based, in runes
	Span    source.Span
	Channel Channel
}

// Start returns the byte offset of the first character.
func (t Token) Start() int { return int(t.Span.Start) }

// Stop returns the byte offset just past the last character.
func (t Token) Stop() int { return int(t.Span.End) }

// RuneLen returns the length of Text in runes.
func (t Token) RuneLen() int { return utf8.RuneCountInString(t.Text) }

// IsHidden reports whether the token is on the hidden channel.
func (t Token) IsHidden() bool { return t.Channel == HiddenChannel }

// IsKeyword reports whether the token is a grammar keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwClass, KwInterface, KwAbstract, KwEnum, KwExtends, KwImplements, KwTitle:
		return true
	default:
		return false
	}
}

// Display returns the token text the way error messages quote it.
func (t Token) Display() string {
	if t.Kind == EOF {
		return "<EOF>"
	}
	return Escape(t.Text)
}

func (t Token) String() string {
	return fmt.Sprintf("[@%d,%d:%d='%s',<%s>,%d:%d]",
		t.Index, t.Span.Start, t.Span.End, t.Display(), t.Kind, t.Line, t.Column)
}
