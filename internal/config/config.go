// Package config loads umlsense.toml, found by walking up from the working
// directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"umlsense/internal/diag"
	"umlsense/internal/diagnose"
	"umlsense/internal/host"
	"umlsense/internal/intellisense"
	"umlsense/internal/trace"
)

// FileName is the project configuration file name.
const FileName = "umlsense.toml"

// ErrNotFound is returned by Find when no configuration exists up to the root.
var ErrNotFound = errors.New("no " + FileName + " found")

type Config struct {
	Completion  CompletionConfig  `toml:"completion"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
	Trace       TraceConfig       `toml:"trace"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type CompletionConfig struct {
	Connectors       []string `toml:"connectors"`
	IncludeMacros    bool     `toml:"include_macros"`
	IncludeVariables bool     `toml:"include_variables"`
}

type DiagnosticsConfig struct {
	Max           int    `toml:"max"`
	TitleWarnings bool   `toml:"title_warnings"`
	Source        string `toml:"source"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Completion: CompletionConfig{
			IncludeMacros:    true,
			IncludeVariables: true,
		},
		Diagnostics: DiagnosticsConfig{
			Max:           100,
			TitleWarnings: true,
			Source:        diag.DefaultSource,
		},
		Trace: TraceConfig{Level: "off"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Discover finds and loads the configuration for startDir, falling back to
// Default when there is none.
func Discover(startDir string) (Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("completion", "connectors") && len(cfg.Completion.Connectors) == 0 {
		return Config{}, fmt.Errorf("%s: [completion].connectors must not be empty", path)
	}
	for _, c := range cfg.Completion.Connectors {
		if strings.TrimSpace(c) == "" {
			return Config{}, fmt.Errorf("%s: [completion].connectors contains a blank entry", path)
		}
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must be >= 0", path)
	}
	if meta.IsDefined("diagnostics", "source") && strings.TrimSpace(cfg.Diagnostics.Source) == "" {
		return Config{}, fmt.Errorf("%s: [diagnostics].source must not be empty", path)
	}
	if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
		return Config{}, fmt.Errorf("%s: [trace].level: %w", path, err)
	}
	if meta.IsDefined("cache", "dir") && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	cfg.Path = path
	return cfg, nil
}

// HostOptions converts the configuration into host options.
func (c Config) HostOptions() host.Options {
	opts := host.DefaultOptions()
	opts.Completion.Synth = intellisense.SynthOptions{Connectors: c.Completion.Connectors}
	opts.IncludeMacros = c.Completion.IncludeMacros
	opts.IncludeVariables = c.Completion.IncludeVariables
	opts.Diagnostics = c.DiagnoseOptions()
	return opts
}

// DiagnoseOptions converts the [diagnostics] section.
func (c Config) DiagnoseOptions() diagnose.Options {
	return diagnose.Options{
		Source:        c.Diagnostics.Source,
		Max:           c.Diagnostics.Max,
		TitleWarnings: c.Diagnostics.TitleWarnings,
	}
}

// OpenCache opens the disk cache when enabled; it returns nil otherwise.
func (c Config) OpenCache() (*diagnose.DiskCache, error) {
	if !c.Cache.Enabled {
		return nil, nil
	}
	if c.Cache.Dir != "" {
		return diagnose.NewDiskCache(c.Cache.Dir)
	}
	return diagnose.OpenDiskCache("umlsense")
}
