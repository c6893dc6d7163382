package diagnose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlsense/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)

	opts := DefaultOptions()
	doc := newDoc("@startuml", "class A {", "@enduml")
	diags := NewCollector(opts).Diagnose(context.Background(), doc)
	require.NotEmpty(t, diags)

	key := CacheKey(doc, opts)
	require.NoError(t, cache.Put(key, doc.URI, diags))

	got, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, diags, got)

	changed := source.NewDocument(doc.URI, doc.Text+"\n")
	_, ok, err = cache.Get(CacheKey(changed, opts))
	require.NoError(t, err)
	assert.False(t, ok, "changed content must miss")

	other := opts
	other.TitleWarnings = false
	assert.NotEqual(t, key, CacheKey(doc, other))
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	doc := newDoc("@startuml", "@enduml")
	key := CacheKey(doc, DefaultOptions())
	require.NoError(t, cache.Put(key, doc.URI, nil))

	require.NoError(t, cache.DropAll())
	_, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCacheNil(t *testing.T) {
	var cache *DiskCache
	require.NoError(t, cache.Put(Key{}, "x", nil))
	_, ok, err := cache.Get(Key{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiagnoseDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) {
		t.Helper()
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(text), 0o600))
	}
	write("a.puml", "@startuml A\nclass A\n@enduml\n")
	write("notes.txt", "@startuml\n@enduml\n")
	write("sub/b.wsd", "@startuml B\nclass B {\n@enduml\n")

	cache, err := NewDiskCache(t.TempDir())
	require.NoError(t, err)
	c := NewCollector(DefaultOptions())

	var events []Event
	_, results, err := c.DiagnoseDir(context.Background(), dir, DirOptions{
		Jobs:     1,
		Cache:    cache,
		Progress: func(e Event) { events = append(events, e) },
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.puml"), results[0].Path)
	assert.Empty(t, results[0].Diagnostics)
	assert.Len(t, results[1].Diagnostics, 1)
	assert.False(t, results[1].Cached)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[1].Done)

	_, again, err := c.DiagnoseDir(context.Background(), dir, DirOptions{Jobs: 2, Cache: cache})
	require.NoError(t, err)
	for _, r := range again {
		assert.True(t, r.Cached, r.Path)
	}
	assert.Equal(t, results[1].Diagnostics, again[1].Diagnostics)
}

func TestIsDiagramFile(t *testing.T) {
	assert.True(t, IsDiagramFile("x/y.PUML"))
	assert.True(t, IsDiagramFile("y.iuml"))
	assert.False(t, IsDiagramFile("y.md"))
}
