// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"plugman-cli/internal/activeset"
	"plugman-cli/internal/catalog"
	"plugman-cli/internal/enable"
	"plugman-cli/internal/issue"
	"plugman-cli/pkg/ezarchive"
	"plugman-cli/pkg/plugin"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// enableCmd resolves, materializes and records the requested plugins.
var enableCmd = &cobra.Command{
	Use:   "enable <name>...",
	Short: "Enable plugins and their dependencies",
	Long: `Enable one or more plugins.

For each requested plugin, plugman resolves the transitive dependency
closure against the distribution directory, copies every required archive
into the active directory, and merges the result into the enabled-plugins
file.

Names missing from the catalog and archives that cannot be read are
reported as warnings; a failed copy or a failed write of the
enabled-plugins file aborts the operation.

Examples:
  plugman enable rabbit_shovel
  plugman enable rabbit_shovel rabbit_federation
  plugman enable my_plugin --dist-dir ./dist --active-dir ./active`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnable,
}

func runEnable(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	logger := newCmdLogger()
	logger.Debug("enabling plugins", "requested", args, "dist_dir", s.DistDir, "active_dir", s.ActiveDir)

	scanner := catalog.New(plugin.NewBaseSet(s.BaseApps...))
	store := activeset.NewStore(s.EnabledFile)
	enabler := enable.New(scanner, store)

	report, err := enabler.Enable(cmd.Context(), enable.Request{
		Names:     args,
		DistDir:   s.DistDir,
		ActiveDir: s.ActiveDir,
	})
	if err != nil {
		renderEnableFailure(err)
		return err
	}

	fmt.Println(sectionTitleStyle.Render("Enable Plugins"))
	printScanProblems(logger, report.Problems)

	for _, missing := range report.Missing {
		fmt.Printf("%s Plugin %s not found in %s\n", warningIcon, PluginStyle.Render(missing), pathStyle.Render(s.DistDir))
	}
	if len(report.Missing) > 0 && len(report.Activated) == 0 {
		rendered, _ := issue.Get(issue.PluginNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return &ExitError{Code: 1, Err: fmt.Errorf("no requested plugin found in %s", s.DistDir)}
	}

	if len(report.Activated) == 0 {
		fmt.Printf("%s Nothing to do; enabled set unchanged\n", infoIcon)
		return nil
	}

	for _, p := range report.Activated {
		fmt.Printf("%s Activated %s %s\n", successIcon, PluginStyle.Render(p.Name), SubtitleStyle.Render(p.Version))
	}

	fmt.Println()
	fmt.Printf("%s Enabled plugins (%d): %s\n", infoIcon, len(report.Enabled), PluginStyle.Render(strings.Join(report.Enabled, ", ")))
	fmt.Printf("%s Recorded in %s\n", infoIcon, pathStyle.Render(store.Path()))

	return nil
}

// renderEnableFailure prints the issue card matching a fatal enable error.
func renderEnableFailure(err error) {
	var id issue.Id
	switch {
	case errors.Is(err, enable.ErrMaterialization):
		id = issue.MaterializationFailedId
	case errors.Is(err, activeset.ErrPersistence):
		id = issue.ActiveSetWriteFailedId
	case errors.Is(err, os.ErrNotExist):
		id = issue.DistDirNotFoundId
	case errors.Is(err, ezarchive.ErrBadDescriptor):
		id = issue.DescriptorErrorId
	default:
		return
	}
	rendered, _ := issue.Get(id).Render("dark")
	fmt.Fprint(os.Stderr, rendered)
}

// printScanProblems reports unreadable archives without failing the command.
func printScanProblems(logger *log.Logger, problems []catalog.Problem) {
	for _, problem := range problems {
		logger.Warn("skipping unreadable archive", "archive", problem.Archive, "cause", problem.Cause)
	}
}

// newCmdLogger builds the diagnostic logger for command execution. Debug
// records are emitted only in verbose mode.
func newCmdLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "plugman",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
