// SPDX-License-Identifier: MPL-2.0

// Package enable sequences the plugin-enabling workflow: scan the
// distribution catalog, resolve the transitive dependency closure of the
// requested names, materialize the required archives into the active
// directory, and persist the merged active-plugin list.
//
// Non-fatal conditions (unreadable archives, requested names absent from the
// catalog) are carried in the Report for the caller to render. A failed copy
// or a failed persistence write is fatal and aborts the operation; archives
// already copied are not rolled back.
package enable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"plugman-cli/internal/catalog"
	"plugman-cli/internal/depgraph"
	"plugman-cli/pkg/plugin"
)

// ErrMaterialization is the sentinel error wrapped by MaterializationError.
var ErrMaterialization = errors.New("materialization failed")

type (
	// ActiveStore abstracts the persisted active-plugin list.
	ActiveStore interface {
		Read() ([]string, error)
		Write(names []string) error
	}

	// Materializer abstracts the raw archive copy into the active directory.
	Materializer interface {
		Copy(src, dstDir string) error
	}

	// MaterializationError reports a failed archive copy. It is fatal to the
	// whole enabling operation and wraps ErrMaterialization for errors.Is()
	// compatibility.
	MaterializationError struct {
		Plugin  string
		Archive string
		Cause   error
	}

	// Request describes one enabling operation.
	Request struct {
		// Names are the plugin names the user asked to enable.
		Names []string
		// DistDir is the distribution directory holding all available archives.
		DistDir string
		// ActiveDir is the directory enabled archives are copied into.
		ActiveDir string
	}

	// Report is the outcome of a successful enabling operation.
	Report struct {
		// Enabled is the final merged active-plugin name set, sorted.
		Enabled []string
		// Activated lists the plugins materialized by this operation, in the
		// order they were copied (dependencies before dependents where the
		// dependency graph allows it).
		Activated []plugin.Plugin
		// Missing lists requested names absent from the catalog.
		Missing []string
		// Problems lists archives that could not be scanned.
		Problems []catalog.Problem
	}

	// Enabler wires the collaborators of the enabling workflow. Construct
	// with New; tests may substitute the Materializer and ActiveStore.
	Enabler struct {
		scanner *catalog.Scanner
		store   ActiveStore
		copier  Materializer
	}

	// fileCopier is the production Materializer: a plain file copy of the
	// archive into the active directory under its base filename.
	fileCopier struct{}
)

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("failed to materialize plugin %s from %s: %v", e.Plugin, e.Archive, e.Cause)
}

// Unwrap returns ErrMaterialization for errors.Is() compatibility.
func (e *MaterializationError) Unwrap() error { return ErrMaterialization }

// New creates an Enabler using the given scanner and active-set store and
// the production file-copy materializer.
func New(scanner *catalog.Scanner, store ActiveStore) *Enabler {
	return &Enabler{scanner: scanner, store: store, copier: fileCopier{}}
}

// WithMaterializer returns a copy of the Enabler using the given
// Materializer. Intended for tests.
func (e *Enabler) WithMaterializer(m Materializer) *Enabler {
	clone := *e
	clone.copier = m
	return &clone
}

// Enable runs the full enabling workflow for the request. The returned
// Report is non-nil exactly when err is nil. Missing names and scan problems
// are reported, not fatal; a copy or persistence failure aborts the
// operation with an error.
func (e *Enabler) Enable(ctx context.Context, req Request) (*Report, error) {
	scan, err := e.scanner.Scan(req.DistDir)
	if err != nil {
		return nil, err
	}

	active, err := e.store.Read()
	if err != nil {
		return nil, err
	}

	res := depgraph.Resolve(scan.Plugins, req.Names)

	report := &Report{
		Missing:  res.Missing,
		Problems: scan.Problems,
	}

	// Nothing resolvable: leave the active set untouched.
	if len(res.Required) == 0 {
		report.Enabled = active
		return report, nil
	}

	// Validate the whole copy plan before the first copy: destination
	// present and every backing archive still readable.
	if err := e.validatePlan(req.ActiveDir, res.Required); err != nil {
		return nil, err
	}

	for _, p := range res.Required {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := e.copier.Copy(p.Location, req.ActiveDir); err != nil {
			return nil, &MaterializationError{Plugin: p.Name, Archive: p.Location, Cause: err}
		}
		report.Activated = append(report.Activated, p)
	}

	merged := plugin.Merge(activeRecords(active, scan), res.Required)
	names := plugin.Names(merged)
	if err := e.store.Write(names); err != nil {
		return nil, err
	}

	report.Enabled = names
	return report, nil
}

// validatePlan ensures the active directory exists and each required
// archive is readable before any copy happens, narrowing the window where a
// mid-plan failure leaves the directory half-updated.
func (e *Enabler) validatePlan(activeDir string, required []plugin.Plugin) error {
	if err := os.MkdirAll(activeDir, 0o755); err != nil {
		return &MaterializationError{Archive: activeDir, Cause: err}
	}
	for _, p := range required {
		if _, err := os.Stat(p.Location); err != nil {
			return &MaterializationError{Plugin: p.Name, Archive: p.Location, Cause: err}
		}
	}
	return nil
}

// activeRecords lifts the persisted active names into plugin records so the
// version merge can compare them against the newly resolved set. Names still
// present in the catalog carry their cataloged version; names no longer in
// any archive survive as bare records.
func activeRecords(names []string, scan *catalog.ScanResult) []plugin.Plugin {
	records := make([]plugin.Plugin, 0, len(names))
	for _, name := range names {
		if p, ok := scan.Find(name); ok {
			records = append(records, p)
			continue
		}
		records = append(records, plugin.Plugin{Name: name})
	}
	return records
}

func (fileCopier) Copy(src, dstDir string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dst := filepath.Join(dstDir, filepath.Base(src))
	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
