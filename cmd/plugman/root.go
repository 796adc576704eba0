// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"plugman-cli/internal/config"
	"plugman-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// distDir overrides the configured plugin distribution directory
	distDir string
	// activeDir overrides the configured active plugin directory
	activeDir string
	// enabledFile overrides the configured enabled-plugins file path
	enabledFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "plugman",
		Short: "A plugin enabling tool",
		Long: TitleStyle.Render("plugman") + SubtitleStyle.Render(" - A plugin enabling tool") + `

plugman manages optional extension plugins distributed as .ez archives.
It scans a distribution directory for archives, resolves the dependency
closure of the plugins you ask for, copies the needed archives into the
active directory, and records the enabled set.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Point plugman at your plugin distribution directory
  2. Inspect what is available with: plugman list
  3. Enable plugins with: plugman enable <name>...

` + SubtitleStyle.Render("Examples:") + `
  plugman list                      List all plugins in the catalog
  plugman enable rabbit_shovel      Enable a plugin and its dependencies
  plugman info rabbit_shovel        Show one plugin's metadata`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/plugman/config.cue)")
	rootCmd.PersistentFlags().StringVar(&distDir, "dist-dir", "", "plugin distribution directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&activeDir, "active-dir", "", "active plugin directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&enabledFile, "enabled-file", "", "enabled-plugins file path (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// settings are the effective paths and base application set for one command
// invocation: configuration values with flag overrides applied.
type settings struct {
	DistDir     string
	ActiveDir   string
	EnabledFile string
	BaseApps    []string
}

// loadSettings resolves the effective settings from the configuration with
// flag overrides applied.
func loadSettings() (*settings, error) {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return nil, err
	}

	s := &settings{
		DistDir:     cfg.DistDir,
		ActiveDir:   cfg.ActiveDir,
		EnabledFile: cfg.EnabledFile,
		BaseApps:    cfg.BaseApps,
	}
	if distDir != "" {
		s.DistDir = distDir
	}
	if activeDir != "" {
		s.ActiveDir = activeDir
	}
	if enabledFile != "" {
		s.EnabledFile = enabledFile
	}
	return s, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
