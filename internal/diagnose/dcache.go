package diagnose

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Key identifies a cached result: document content plus every option that
// changes the diagnostics.
type Key [32]byte

// CacheKey derives the key for doc diagnosed with opts.
func CacheKey(doc *source.Document, opts Options) Key {
	h := sha256.New()
	fmt.Fprintf(h, "v%d\x00%s\x00%d\x00%t\x00", diskCacheSchemaVersion, opts.Source, opts.Max, opts.TitleWarnings)
	_, _ = h.Write(doc.Hash[:])
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

// DiskCache хранит диагностики документов по Key на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of one document's diagnostics.
type DiskPayload struct {
	Schema      uint16           `msgpack:"schema"`
	Path        string           `msgpack:"path"`
	Diagnostics []diskDiagnostic `msgpack:"diags"`
}

type diskDiagnostic struct {
	Severity uint8    `msgpack:"sev"`
	Code     uint16   `msgpack:"code"`
	Message  string   `msgpack:"msg"`
	Source   string   `msgpack:"src"`
	Anchored bool     `msgpack:"anchored"`
	Range    [4]int32 `msgpack:"range"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when missing.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Key) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "diags", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes diagnostics to the disk cache.
func (c *DiskCache) Put(key Key, path string, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	payload, err := toDiskPayload(path, diags)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	// после успешного Rename файла уже нет
	defer func() { _ = os.Remove(tmp) }()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads cached diagnostics. ok is false on a miss or a schema mismatch.
func (c *DiskCache) Get(key Key) (diags []diag.Diagnostic, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return fromDiskPayload(&payload), true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "diags"))
}

func toDiskPayload(path string, diags []diag.Diagnostic) (*DiskPayload, error) {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		Diagnostics: make([]diskDiagnostic, len(diags)),
	}
	for i, d := range diags {
		dd := diskDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Source:   d.Source,
			Anchored: d.Range != nil,
		}
		if d.Range != nil {
			for j, v := range []int{d.Range.Start.Line, d.Range.Start.Character, d.Range.End.Line, d.Range.End.Character} {
				n, err := safecast.Conv[int32](v)
				if err != nil {
					return nil, fmt.Errorf("diagnostic %d range: %w", i, err)
				}
				dd.Range[j] = n
			}
		}
		payload.Diagnostics[i] = dd
	}
	return payload, nil
}

func fromDiskPayload(payload *DiskPayload) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(payload.Diagnostics))
	for i, dd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(dd.Severity),
			Code:     diag.Code(dd.Code),
			Message:  dd.Message,
			Source:   dd.Source,
		}
		if dd.Anchored {
			d.Range = &source.Range{
				Start: source.Position{Line: int(dd.Range[0]), Character: int(dd.Range[1])},
				End:   source.Position{Line: int(dd.Range[2]), Character: int(dd.Range[3])},
			}
		}
		out[i] = d
	}
	return out
}
