// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"plugman-cli/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DistDir != "plugins" {
		t.Errorf("expected default dist dir to be plugins, got %s", cfg.DistDir)
	}

	if cfg.ActiveDir != "plugins/active" {
		t.Errorf("expected default active dir to be plugins/active, got %s", cfg.ActiveDir)
	}

	if cfg.EnabledFile == "" {
		t.Error("expected default enabled file to be set")
	}

	if len(cfg.BaseApps) == 0 {
		t.Error("expected default base apps to be non-empty")
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup only applies on Linux")
	}

	testXDGPath := "/tmp/test-xdg-config"
	restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)
	defer restoreXDG()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestConfigDirOverride(t *testing.T) {
	defer Reset()

	SetConfigDirOverride("/custom/config/dir")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != "/custom/config/dir" {
		t.Errorf("ConfigDir() = %s, want /custom/config/dir", dir)
	}
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	provider := NewProvider()

	cfg, err := provider.Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.DistDir != defaults.DistDir {
		t.Errorf("expected default dist dir %s, got %s", defaults.DistDir, cfg.DistDir)
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	cfgDir := t.TempDir()
	content := `
dist_dir:   "/srv/plugins"
active_dir: "/srv/plugins/active"
base_apps: ["kernel", "stdlib", "crypto"]
ui: verbose: true
`
	writeConfigFile(t, cfgDir, content)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.DistDir != "/srv/plugins" {
		t.Errorf("expected dist dir /srv/plugins, got %s", cfg.DistDir)
	}
	if !cfg.UI.Verbose {
		t.Error("expected verbose to be true")
	}
	if len(cfg.BaseApps) != 3 {
		t.Errorf("expected 3 base apps, got %v", cfg.BaseApps)
	}
	// Fields absent from the file keep their defaults.
	if cfg.EnabledFile != DefaultConfig().EnabledFile {
		t.Errorf("expected default enabled file, got %s", cfg.EnabledFile)
	}
}

func TestLoadExplicitConfigFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`dist_dir: "/opt/pl"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.DistDir != "/opt/pl" {
		t.Errorf("expected dist dir /opt/pl, got %s", cfg.DistDir)
	}
}

func TestLoadExplicitConfigFileMissing(t *testing.T) {
	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	cfgDir := t.TempDir()
	writeConfigFile(t, cfgDir, `dist_dir: 42`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestLoadRejectsInvalidColorScheme(t *testing.T) {
	cfgDir := t.TempDir()
	writeConfigFile(t, cfgDir, `ui: color_scheme: "sepia"`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err == nil {
		t.Fatal("expected color scheme validation error")
	}
}

func TestLoadRejectsDuplicateBaseApps(t *testing.T) {
	cfgDir := t.TempDir()
	writeConfigFile(t, cfgDir, `base_apps: ["kernel", "kernel"]`)

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err == nil {
		t.Fatal("expected duplicate base_apps error")
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestValidateBlankPaths(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"blank dist_dir", func(c *Config) { c.DistDir = "  " }},
		{"blank active_dir", func(c *Config) { c.ActiveDir = "" }},
		{"blank enabled_file", func(c *Config) { c.EnabledFile = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateBaseApps(t *testing.T) {
	if err := validateBaseApps([]string{"kernel", "stdlib"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := validateBaseApps([]string{"kernel", ""})
	if !errors.Is(err, ErrInvalidBaseApps) {
		t.Errorf("expected ErrInvalidBaseApps for blank entry, got %v", err)
	}

	err = validateBaseApps([]string{"mnesia", "mnesia"})
	if !errors.Is(err, ErrInvalidBaseApps) {
		t.Errorf("expected ErrInvalidBaseApps for duplicate entry, got %v", err)
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	cfgDir := t.TempDir()
	orig := DefaultConfig()
	orig.DistDir = "/data/plugins"
	orig.UI.Verbose = true
	writeConfigFile(t, cfgDir, GenerateCUE(orig))

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.DistDir != orig.DistDir || cfg.UI.Verbose != orig.UI.Verbose {
		t.Errorf("round-trip mismatch: %+v", cfg)
	}
}

func writeConfigFile(t *testing.T, cfgDir, content string) {
	t.Helper()
	path := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadCachesResult(t *testing.T) {
	defer Reset()
	Reset()
	SetConfigDirOverride(t.TempDir())

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	second, err := Load()
	if err != nil {
		t.Fatalf("second Load() returned error: %v", err)
	}
	if first != second {
		t.Error("expected Load() to return the cached instance")
	}
}

func TestSetConfigFilePathOverrideClearsCache(t *testing.T) {
	defer Reset()
	Reset()
	SetConfigDirOverride(t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "override.cue")
	if err := os.WriteFile(path, []byte(`dist_dir: "/override"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	SetConfigFilePathOverride(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() after override returned error: %v", err)
	}
	if cfg.DistDir != "/override" {
		t.Errorf("expected dist dir /override, got %s", cfg.DistDir)
	}
	if LoadedConfigPath() != path {
		t.Errorf("LoadedConfigPath() = %q, want %q", LoadedConfigPath(), path)
	}
}
