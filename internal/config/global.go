// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	// globalMu guards the cached configuration below.
	globalMu sync.Mutex
	// globalConfig caches the last successfully loaded configuration.
	globalConfig *Config
	// configPath records the file the cached configuration was loaded from
	// ("" when defaults were used).
	configPath string

	// configFilePathOverride forces loading from a specific file
	// (set via the --config flag).
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the process-wide configuration, loading it once and caching
// the result. Callers that need explicit options should use Provider instead.
func Load() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	return cfg, nil
}

// LoadedConfigPath returns the path of the file the cached configuration was
// loaded from, or "" when defaults were used or nothing is cached yet.
func LoadedConfigPath() string {
	globalMu.Lock()
	defer globalMu.Unlock()
	return configPath
}

// SetConfigFilePathOverride forces subsequent loads to read the given file
// and clears the cache so the override takes effect.
func SetConfigFilePathOverride(path string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configFilePathOverride = path
	globalConfig = nil
	configPath = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configDirOverride = dir
	globalConfig = nil
	configPath = ""
}

// Reset clears test overrides and the cached configuration.
// Call from test cleanup to restore defaults.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	configFilePathOverride = ""
	configDirOverride = ""
	globalConfig = nil
	configPath = ""
}
