package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"umlsense/internal/source"
)

// FormatPath renders a file path according to mode. baseDir is used by
// PathModeRelative; an empty baseDir means the working directory.
func FormatPath(path string, mode PathMode, baseDir string) string {
	if path == "" || strings.Contains(path, "://") {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path

	case PathModeRelative:
		if baseDir == "" {
			// Если базовая директория не указана, используем текущую
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
		return path

	case PathModeBasename:
		return filepath.Base(path)

	default:
		if len(path) < 40 || !filepath.IsAbs(path) {
			return path
		}
		return filepath.Base(path)
	}
}

func reportPath(fs *source.FileSet, r Report, mode PathMode) string {
	path := r.Path
	if r.Doc != nil {
		path = r.Doc.URI
	}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	return FormatPath(path, mode, base)
}
