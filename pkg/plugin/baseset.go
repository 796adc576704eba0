// SPDX-License-Identifier: MPL-2.0

package plugin

import "sort"

// DefaultBaseApps are the always-present runtime applications assumed when no
// explicit base set is configured. References to these never become plugin
// dependencies.
var DefaultBaseApps = []string{"kernel", "stdlib", "sasl", "os_mon", "mnesia"}

// BaseSet is the set of always-present base applications. A descriptor's
// referenced application is kept as a plugin dependency only when it is NOT
// in the base set. Membership is a pure lookup with no runtime side effects.
type BaseSet map[string]struct{}

// NewBaseSet builds a BaseSet from the given names. With no names, the
// default base applications are used.
func NewBaseSet(names ...string) BaseSet {
	if len(names) == 0 {
		names = DefaultBaseApps
	}
	s := make(BaseSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is an always-present base application.
func (s BaseSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// FilterDependencies returns the subset of apps that denote optional plugins,
// preserving input order.
func (s BaseSet) FilterDependencies(apps []string) []string {
	var deps []string
	for _, a := range apps {
		if !s.Contains(a) {
			deps = append(deps, a)
		}
	}
	return deps
}

// Names returns the base application names in sorted order.
func (s BaseSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
