package source

// Span is the half-open byte range [Start, End) of a token in the text it
// was lexed from. For diagram blocks that text is the block content, not
// the whole document.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Covers reports whether o lies within s, both bounds inclusive. A caret
// anchor on the first or last token of a rule is still covered by the rule.
func (s Span) Covers(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}
