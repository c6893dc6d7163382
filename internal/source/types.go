package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// Document is an immutable text buffer with a line index.
// Positions are zero-based; characters are counted in runes.
type Document struct {
	ID      FileID
	URI     string
	Text    string
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// NewDocument builds a Document over text. The text is used as is: callers that
// read from disk should go through FileSet.Load to get CRLF/BOM normalisation.
func NewDocument(uri, text string) *Document {
	return &Document{
		URI:     uri,
		Text:    text,
		LineIdx: buildLineIndex(text),
		Hash:    hashText(text),
		Flags:   FileVirtual,
	}
}

// LineCount returns the number of lines; an empty document has one line.
func (d *Document) LineCount() int {
	return len(d.LineIdx) + 1
}
