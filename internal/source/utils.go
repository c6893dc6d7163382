package source

import (
	"bytes"
	"crypto/sha256"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizeContent prepares file bytes for a Document: strips a UTF-8 BOM,
// folds CRLF into LF (lone CR stays) and composes to NFC so that class names
// typed in the editor compare equal to the ones on disk.
func normalizeContent(content []byte) (string, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return norm.NFC.String(string(content)), flags
}

func buildLineIndex(text string) []uint32 {
	out := make([]uint32, 0, strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- documents are far below 4GiB
		}
	}
	return out
}

func hashText(text string) [32]byte {
	return sha256.Sum256([]byte(text))
}

// normalizePath keeps URIs as they are and cleans file paths to slash form.
func normalizePath(p string) string {
	if strings.Contains(p, "://") {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
