// SPDX-License-Identifier: MPL-2.0

// Package plugin defines the core plugin record and the version-merge rules
// used when combining the currently-active plugin set with a newly resolved
// one. A plugin's identity is its name alone; two records sharing a name are
// the same logical plugin at different versions.
package plugin

import (
	"sort"
	"strings"
)

type (
	// Plugin is an immutable record describing one optional extension plugin
	// discovered in an archive. Records are rebuilt on every catalog scan and
	// never outlive a single operation.
	Plugin struct {
		// Name is the unique symbolic identifier, the primary key within a catalog.
		Name string
		// Version is an opaque version token. Ordering is lexicographic over the
		// raw string, not semver-aware (see CompareVersions).
		Version string
		// Description is free text, display-only.
		Description string
		// Dependencies holds the names of plugins this plugin requires.
		// Names only; version constraints from the descriptor are not retained.
		Dependencies []string
		// Location is the path to the backing archive, used only when the
		// plugin is materialized into the active directory.
		Location string
	}
)

// CompareVersions compares two version tokens lexicographically and returns
// -1, 0, or +1. This is intentionally NOT semantic-version ordering: "9"
// sorts after "10". Known limitation, kept for compatibility with existing
// plugin catalogs.
func CompareVersions(a, b string) int {
	return strings.Compare(a, b)
}

// Names returns the name set of the given plugins, in input order.
func Names(plugins []Plugin) []string {
	names := make([]string, 0, len(plugins))
	for _, p := range plugins {
		names = append(names, p.Name)
	}
	return names
}

// Merge combines two plugin collections into one, deduplicating by name.
// When both collections contain the same name, only the record with the
// lexicographically greater version survives. The result is sorted by name
// and contains at most one record per distinct name.
func Merge(a, b []Plugin) []Plugin {
	all := make([]Plugin, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return CompareVersions(all[i].Version, all[j].Version) < 0
	})

	// Duplicates by name are adjacent after the sort; the record with the
	// greater version comes last, so it wins.
	merged := make([]Plugin, 0, len(all))
	for _, p := range all {
		if n := len(merged); n > 0 && merged[n-1].Name == p.Name {
			merged[n-1] = p
			continue
		}
		merged = append(merged, p)
	}

	return merged
}
