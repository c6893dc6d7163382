package version

import (
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if got := Collect().Plain(); got != "0.3.0-dev" {
		t.Errorf("Plain() = %q, want %q", got, "0.3.0-dev")
	}
}

func TestCollect_TrimsAndDefaults(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	// simulating build-time ldflags
	Version = "  "
	GitCommit = " abc123def456\n"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Collect()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q", info.GitCommit)
	}
	if info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func TestPlain_StripsColors(t *testing.T) {
	info := Info{Version: "\x1b[33;1m1\x1b[0m.\x1b[32;1m2\x1b[0m.3"}
	if got := info.Plain(); got != "1.2.3" {
		t.Errorf("Plain() = %q, want 1.2.3", got)
	}
}
