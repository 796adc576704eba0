// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"plugman-cli/internal/activeset"
	"plugman-cli/internal/catalog"
	"plugman-cli/internal/issue"
	"plugman-cli/pkg/plugin"

	"github.com/spf13/cobra"
)

// infoCmd shows the metadata of a single plugin.
var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show one plugin's metadata",
	Long: `Show the metadata of a single plugin from the catalog: version,
description, dependencies and the archive it was read from.

Examples:
  plugman info rabbit_shovel`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

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
	printScanProblems(logger, scan.Problems)

	p, ok := scan.Find(name)
	if !ok {
		rendered, _ := issue.Get(issue.PluginNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return &ExitError{Code: 1, Err: fmt.Errorf("plugin %s not found in %s", name, s.DistDir)}
	}

	enabled, err := activeset.NewStore(s.EnabledFile).Read()
	if err != nil {
		return err
	}
	state := "available"
	for _, n := range enabled {
		if n == p.Name {
			state = "enabled"
			break
		}
	}

	fmt.Println(sectionTitleStyle.Render("Plugin Info"))
	fmt.Printf("%s Name:         %s\n", infoIcon, PluginStyle.Render(p.Name))
	fmt.Printf("%s Version:      %s\n", infoIcon, p.Version)
	if p.Description != "" {
		fmt.Printf("%s Description:  %s\n", infoIcon, p.Description)
	}
	fmt.Printf("%s State:        %s\n", infoIcon, state)
	fmt.Printf("%s Archive:      %s\n", infoIcon, pathStyle.Render(p.Location))
	if len(p.Dependencies) > 0 {
		fmt.Printf("%s Dependencies: %s\n", infoIcon, PluginStyle.Render(strings.Join(p.Dependencies, ", ")))
	} else {
		fmt.Printf("%s Dependencies: %s\n", infoIcon, SubtitleStyle.Render("none"))
	}

	return nil
}
