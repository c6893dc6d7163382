package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

// FileSet manages a collection of documents keyed by URI.
type FileSet struct {
	docs    []*Document
	index   map[string]FileID // uri -> latest id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		docs:  make([]*Document, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir возвращает текущую базовую директорию.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a document and returns its FileID.
// It always creates a new FileID even if a document with the same URI already exists.
func (fileSet *FileSet) Add(uri, text string, flags FileFlags) FileID {
	normalized := normalizePath(uri)
	n, err := safecast.Conv[uint32](len(fileSet.docs))
	if err != nil {
		panic(fmt.Errorf("len docs overflow: %w", err))
	}
	id := FileID(n)
	fileSet.docs = append(fileSet.docs, &Document{
		ID:      id,
		URI:     normalized,
		Text:    text,
		LineIdx: buildLineIndex(text),
		Hash:    hashText(text),
		Flags:   flags,
	})
	fileSet.index[normalized] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM/NFC, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	text, flags := normalizeContent(content)
	return fileSet.Add(path, text, flags), nil
}

// AddVirtual adds an in-memory document with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(uri, text string) FileID {
	return fileSet.Add(uri, text, FileVirtual)
}

// Get returns the document for the given ID, or nil when out of range.
func (fileSet *FileSet) Get(id FileID) *Document {
	if int(id) >= len(fileSet.docs) {
		return nil
	}
	return fileSet.docs[id]
}

// GetByURI возвращает последнюю версию документа по URI.
func (fileSet *FileSet) GetByURI(uri string) (*Document, bool) {
	if id, ok := fileSet.index[normalizePath(uri)]; ok {
		return fileSet.docs[id], true
	}
	return nil, false
}

// Len returns the number of stored documents, including superseded versions.
func (fileSet *FileSet) Len() int {
	return len(fileSet.docs)
}

// DisplayPath returns the URI relative to the base directory when possible.
func (fileSet *FileSet) DisplayPath(doc *Document) string {
	if doc == nil {
		return ""
	}
	if strings.Contains(doc.URI, "://") || !filepath.IsAbs(doc.URI) {
		return doc.URI
	}
	if rel, err := filepath.Rel(fileSet.BaseDir(), doc.URI); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return doc.URI
}
