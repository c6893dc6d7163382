package diagnose

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"umlsense/internal/diag"
	"umlsense/internal/source"
)

// Extensions lists the file suffixes treated as diagram sources.
var Extensions = []string{".puml", ".plantuml", ".pu", ".iuml", ".wsd"}

// FileResult is the outcome for one file of a directory run.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Diagnostics []diag.Diagnostic
	Cached      bool
	// Err is set when the file could not be read; Diagnostics is then empty.
	Err error
}

// Event reports progress of DiagnoseDir.
type Event struct {
	Path     string
	Done     int
	Total    int
	Problems int
	Cached   bool
	Err      error
}

// DirOptions configures DiagnoseDir.
type DirOptions struct {
	Jobs     int
	Cache    *DiskCache
	Progress func(Event)
}

// IsDiagramFile reports whether path has one of Extensions.
func IsDiagramFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ListFiles returns the sorted diagram files under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsDiagramFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// DiagnoseDir diagnoses every diagram file under dir in parallel. Results
// are in ListFiles order. A file that fails to load yields a result with
// Err set; only cancellation and walk failures abort the run.
func (c *Collector) DiagnoseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: грузим всё заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res := FileResult{Path: path}
			if loadErr, failed := loadErrors[path]; failed {
				res.Err = loadErr
			} else {
				res.FileID = fileIDs[path]
				res.Diagnostics, res.Cached = c.diagnoseCached(gctx, fileSet.Get(res.FileID), opts.Cache)
			}
			results[i] = res

			n := done.Add(1)
			if opts.Progress != nil {
				opts.Progress(Event{
					Path:     path,
					Done:     int(n),
					Total:    len(files),
					Problems: len(res.Diagnostics),
					Cached:   res.Cached,
					Err:      res.Err,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// diagnoseCached consults the disk cache first. Cache failures are not
// fatal: the document is simply diagnosed again.
func (c *Collector) diagnoseCached(ctx context.Context, doc *source.Document, cache *DiskCache) ([]diag.Diagnostic, bool) {
	if cache == nil {
		return c.Diagnose(ctx, doc), false
	}
	key := CacheKey(doc, c.opts)
	if diags, ok, err := cache.Get(key); err == nil && ok {
		return diags, true
	}
	diags := c.Diagnose(ctx, doc)
	_ = cache.Put(key, doc.URI, diags)
	return diags, false
}
