// SPDX-License-Identifier: MPL-2.0

// Package activeset persists the list of enabled plugin names. The on-disk
// format is a small TOML document:
//
//	version = "1.0"
//	plugins = ["plugin_a", "plugin_b"]
//
// A missing file reads as an empty set. Writes are atomic (temp file +
// rename) so a crashed write never leaves a truncated list behind.
package activeset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// FormatVersion is the active-set file format version.
const FormatVersion = "1.0"

// ErrPersistence is the sentinel error wrapped by PersistenceError.
var ErrPersistence = errors.New("active-set persistence failed")

type (
	// PersistenceError reports a failed read or write of the active-set
	// file. It wraps ErrPersistence for errors.Is() compatibility.
	PersistenceError struct {
		Op    string // "read" or "write"
		Path  string
		Cause error
	}

	// Store reads and writes the enabled-plugins file at a fixed path.
	Store struct {
		path string
	}

	// document is the TOML shape of the active-set file.
	document struct {
		Version string   `toml:"version"`
		Plugins []string `toml:"plugins"`
	}
)

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s active-plugin list %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns ErrPersistence for errors.Is() compatibility.
func (e *PersistenceError) Unwrap() error { return ErrPersistence }

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path backing this store.
func (s *Store) Path() string { return s.path }

// Read returns the currently persisted active-plugin names, sorted. A
// missing file is an empty set, not an error.
func (s *Store) Read() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "read", Path: s.path, Cause: err}
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.path, Cause: err}
	}

	sort.Strings(doc.Plugins)
	return doc.Plugins, nil
}

// Write persists the given names as the new active set. Names are
// deduplicated and sorted before writing; the write is atomic.
func (s *Store) Write(names []string) error {
	doc := document{Version: FormatVersion, Plugins: dedupSorted(names)}

	data, err := toml.Marshal(doc)
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Cause: err}
	}

	// Write atomically using temp file + rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Cause: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return &PersistenceError{Op: "write", Path: s.path, Cause: err}
	}

	return nil
}

func dedupSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
