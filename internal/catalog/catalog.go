// SPDX-License-Identifier: MPL-2.0

// Package catalog scans a distribution directory of plugin archives and
// builds the catalog of available plugins. Individual archive failures are
// collected as structured problems and returned to the caller for rendering;
// they never abort a scan. Only a failure to list the directory itself is an
// error.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plugman-cli/pkg/ezarchive"
	"plugman-cli/pkg/plugin"
)

type (
	// Problem records one archive that could not be turned into a plugin
	// record. Problems are diagnostics, not failures: the scan that produced
	// them still succeeded.
	Problem struct {
		// Archive is the path of the offending archive.
		Archive string
		// Cause is the extraction error.
		Cause error
	}

	// ScanResult bundles the plugins discovered by one scan with the
	// problems encountered along the way.
	ScanResult struct {
		Plugins  []plugin.Plugin
		Problems []Problem
	}

	// Scanner enumerates plugin archives in a directory and extracts their
	// metadata. The zero value is not usable; construct with New.
	Scanner struct {
		base plugin.BaseSet
	}
)

func (p Problem) String() string {
	return fmt.Sprintf("%s: %v", filepath.Base(p.Archive), p.Cause)
}

// Find returns the first plugin with the given name, if present.
func (r *ScanResult) Find(name string) (plugin.Plugin, bool) {
	for _, p := range r.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return plugin.Plugin{}, false
}

// New creates a Scanner that filters descriptor dependencies against the
// given base-application set.
func New(base plugin.BaseSet) *Scanner {
	return &Scanner{base: base}
}

// Scan enumerates all .ez archives in dir (non-recursive, listing order) and
// extracts a plugin record from each. Archives that fail extraction are
// reported in ScanResult.Problems; the scan itself only fails when the
// directory cannot be read.
func (s *Scanner) Scan(dir string) (*ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory %s: %w", dir, err)
	}

	result := &ScanResult{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ezarchive.ArchiveSuffix) {
			continue
		}
		archivePath := filepath.Join(dir, entry.Name())

		p, err := ezarchive.Extract(archivePath, s.base)
		if err != nil {
			result.Problems = append(result.Problems, Problem{Archive: archivePath, Cause: err})
			continue
		}
		result.Plugins = append(result.Plugins, *p)
	}

	return result, nil
}
