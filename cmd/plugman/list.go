// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"plugman-cli/internal/activeset"
	"plugman-cli/internal/catalog"
	"plugman-cli/internal/issue"
	"plugman-cli/pkg/plugin"

	"github.com/spf13/cobra"
)

// listCmd prints every plugin in the catalog, annotated with its state.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plugins in the catalog",
	Long: `List every plugin found in the distribution directory.

Each plugin is shown with its version, description and state: enabled
(recorded in the enabled-plugins file) or available. Archives that cannot
be read are reported as warnings and do not abort the listing.

Examples:
  plugman list
  plugman list --dist-dir ./dist`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	logger := newCmdLogger()

	scan, err := catalog.New(plugin.NewBaseSet(s.BaseApps...)).Scan(s.DistDir)
	if err != nil {
		rendered, _ := issue.Get(issue.DistDirNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	enabled, err := activeset.NewStore(s.EnabledFile).Read()
	if err != nil {
		rendered, _ := issue.Get(issue.ActiveSetWriteFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}
	enabledSet := make(map[string]struct{}, len(enabled))
	for _, name := range enabled {
		enabledSet[name] = struct{}{}
	}

	fmt.Println(sectionTitleStyle.Render("Plugin Catalog"))
	fmt.Printf("%s Directory: %s\n", infoIcon, pathStyle.Render(s.DistDir))
	fmt.Println()

	printScanProblems(logger, scan.Problems)

	if len(scan.Plugins) == 0 {
		fmt.Printf("%s No plugins found\n", warningIcon)
		return nil
	}

	for _, p := range scan.Plugins {
		marker := infoIcon
		state := SubtitleStyle.Render("available")
		if _, ok := enabledSet[p.Name]; ok {
			marker = successIcon
			state = SuccessStyle.Render("enabled")
		}
		fmt.Printf("%s %s %s [%s]\n", marker, PluginStyle.Render(p.Name), SubtitleStyle.Render(p.Version), state)
		if verbose && p.Description != "" {
			fmt.Printf("    %s\n", VerboseStyle.Render(p.Description))
		}
	}

	// Enabled names whose archive has disappeared from the catalog.
	for _, name := range enabled {
		if _, ok := scan.Find(name); !ok {
			fmt.Printf("%s %s [%s]\n", warningIcon, PluginStyle.Render(name), WarningStyle.Render("enabled, archive missing"))
		}
	}

	return nil
}
