// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestLoadSettingsFlagOverrides(t *testing.T) {
	// Not parallel: mutates package-level flag vars and config cache.
	origDist, origActive, origEnabled := distDir, activeDir, enabledFile
	t.Cleanup(func() {
		distDir, activeDir, enabledFile = origDist, origActive, origEnabled
	})

	distDir = "/flag/dist"
	activeDir = ""
	enabledFile = "/flag/enabled"

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings() returned error: %v", err)
	}
	if s.DistDir != "/flag/dist" {
		t.Errorf("DistDir = %q, want /flag/dist", s.DistDir)
	}
	if s.EnabledFile != "/flag/enabled" {
		t.Errorf("EnabledFile = %q, want /flag/enabled", s.EnabledFile)
	}
	if s.ActiveDir == "" {
		t.Error("expected ActiveDir to fall back to the configured value")
	}
	if len(s.BaseApps) == 0 {
		t.Error("expected BaseApps to carry the configured base set")
	}
}
