// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"plugman-cli/pkg/plugin"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidBaseApps is the sentinel error wrapped by InvalidBaseAppsError.
	ErrInvalidBaseApps = errors.New("invalid base_apps")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidBaseAppsError is returned when the base_apps list contains an
	// empty or duplicate entry. It wraps ErrInvalidBaseApps.
	InvalidBaseAppsError struct {
		Index  int
		Value  string
		Reason string
	}

	// InvalidConfigError is returned when a Config fails validation.
	// It wraps ErrInvalidConfig and the underlying field error.
	InvalidConfigError struct {
		Cause error
	}

	// UIConfig holds user interface preferences.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose"`
	}

	// Config is the top-level plugman configuration.
	Config struct {
		// DistDir is the directory scanned for distributed plugin archives.
		DistDir string `mapstructure:"dist_dir"`
		// ActiveDir is the directory enabled plugin archives are copied into.
		ActiveDir string `mapstructure:"active_dir"`
		// EnabledFile is the path of the enabled-plugins record.
		EnabledFile string `mapstructure:"enabled_file"`
		// BaseApps lists application names excluded from dependency lists.
		BaseApps []string `mapstructure:"base_apps"`
		// UI holds user interface preferences.
		UI UIConfig `mapstructure:"ui"`
	}
)

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

func (e *InvalidBaseAppsError) Error() string {
	return fmt.Sprintf("base_apps[%d] %q: %s", e.Index, e.Value, e.Reason)
}

func (e *InvalidBaseAppsError) Unwrap() error { return ErrInvalidBaseApps }

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", e.Cause)
}

func (e *InvalidConfigError) Unwrap() error { return errors.Join(ErrInvalidConfig, e.Cause) }

// Validate checks that the color scheme is one of the recognized values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// DefaultConfig returns a Config populated with built-in defaults.
// Directory paths are relative to the working directory; deployments
// are expected to set them in the config file or via flags.
func DefaultConfig() *Config {
	return &Config{
		DistDir:     "plugins",
		ActiveDir:   "plugins/active",
		EnabledFile: "plugins/enabled_plugins",
		BaseApps:    append([]string(nil), plugin.DefaultBaseApps...),
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Validate checks the configuration for values CUE cannot reject:
// blank directory paths, and empty or duplicate base_apps entries.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DistDir) == "" {
		return &InvalidConfigError{Cause: errors.New("dist_dir must not be blank")}
	}
	if strings.TrimSpace(c.ActiveDir) == "" {
		return &InvalidConfigError{Cause: errors.New("active_dir must not be blank")}
	}
	if strings.TrimSpace(c.EnabledFile) == "" {
		return &InvalidConfigError{Cause: errors.New("enabled_file must not be blank")}
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		return &InvalidConfigError{Cause: err}
	}
	if err := validateBaseApps(c.BaseApps); err != nil {
		return &InvalidConfigError{Cause: err}
	}
	return nil
}

// validateBaseApps rejects blank and duplicate application names.
func validateBaseApps(apps []string) error {
	seen := make(map[string]struct{}, len(apps))
	for i, app := range apps {
		if strings.TrimSpace(app) == "" {
			return &InvalidBaseAppsError{Index: i, Value: app, Reason: "name must not be blank"}
		}
		if _, dup := seen[app]; dup {
			return &InvalidBaseAppsError{Index: i, Value: app, Reason: "duplicate entry"}
		}
		seen[app] = struct{}{}
	}
	return nil
}
