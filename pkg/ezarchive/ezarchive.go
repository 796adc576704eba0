// SPDX-License-Identifier: MPL-2.0

// Package ezarchive extracts plugin metadata from .ez plugin archives.
//
// An .ez archive is a ZIP container holding one Erlang application. Its
// descriptor lives under an ebin/ directory with a .app suffix, usually as
// <name>-<version>/ebin/<name>.app. Extraction locates the descriptor in the
// archive listing, parses it with pkg/appfile, and filters the referenced
// applications down to optional plugin dependencies using a base-application
// set.
package ezarchive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"plugman-cli/pkg/appfile"
	"plugman-cli/pkg/plugin"
)

// ArchiveSuffix is the filename suffix identifying plugin archives.
const ArchiveSuffix = ".ez"

// descriptorSuffix identifies descriptor entries within an archive.
const descriptorSuffix = ".app"

var (
	// ErrBadArchive indicates the archive container itself could not be read.
	ErrBadArchive = errors.New("unreadable archive")
	// ErrNoDescriptor indicates no ebin/*.app entry exists in the archive.
	ErrNoDescriptor = errors.New("no descriptor found")
	// ErrBadDescriptor indicates the descriptor entry could not be parsed.
	ErrBadDescriptor = errors.New("malformed descriptor")
)

// ExtractionError reports a failed extraction for one archive. It wraps one
// of the sentinel reasons above so callers can classify failures with
// errors.Is() while scanning keeps going.
type ExtractionError struct {
	// Archive identifies the failing archive (path or caller-supplied id).
	Archive string
	// Reason is one of ErrBadArchive, ErrNoDescriptor, ErrBadDescriptor.
	Reason error
	// Cause is the underlying error (optional).
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %s", e.Archive, e.Reason, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.Archive, e.Reason)
}

// Unwrap returns the classification sentinel for errors.Is() compatibility.
func (e *ExtractionError) Unwrap() error { return e.Reason }

// Extract reads the plugin archive at archivePath and returns its plugin
// record. The record's Location is archivePath. Failures are reported as
// *ExtractionError; no other error type escapes.
func Extract(archivePath string, base plugin.BaseSet) (*plugin.Plugin, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, &ExtractionError{Archive: archivePath, Reason: ErrBadArchive, Cause: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &ExtractionError{Archive: archivePath, Reason: ErrBadArchive, Cause: err}
	}

	return ExtractReader(f, info.Size(), archivePath, base)
}

// ExtractReader extracts a plugin record from archive bytes supplied as an
// io.ReaderAt. archiveID identifies the archive in errors and becomes the
// record's Location.
func ExtractReader(r io.ReaderAt, size int64, archiveID string, base plugin.BaseSet) (*plugin.Plugin, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &ExtractionError{Archive: archiveID, Reason: ErrBadArchive, Cause: err}
	}

	entry := findDescriptor(zr)
	if entry == nil {
		return nil, &ExtractionError{Archive: archiveID, Reason: ErrNoDescriptor}
	}

	data, err := readEntry(entry)
	if err != nil {
		return nil, &ExtractionError{Archive: archiveID, Reason: ErrBadArchive, Cause: err}
	}

	desc, err := appfile.Parse(data)
	if err != nil {
		return nil, &ExtractionError{Archive: archiveID, Reason: ErrBadDescriptor, Cause: err}
	}

	return &plugin.Plugin{
		Name:         desc.Name,
		Version:      desc.Version,
		Description:  desc.Description,
		Dependencies: base.FilterDependencies(desc.Applications),
		Location:     archiveID,
	}, nil
}

// findDescriptor selects the descriptor entry: the first entry in listing
// order whose path ends in ebin/<something>.app. When several entries match
// (it happens with hand-rolled archives), the first one wins; there is no
// further tie-break.
func findDescriptor(zr *zip.Reader) *zip.File {
	for _, f := range zr.File {
		if isDescriptorPath(f.Name) {
			return f
		}
	}
	return nil
}

// isDescriptorPath reports whether an archive entry path identifies the
// application descriptor. Accepted forms are ebin/<name>.app at the archive
// root or <dir>/ebin/<name>.app one level down.
func isDescriptorPath(name string) bool {
	if !strings.HasSuffix(name, descriptorSuffix) {
		return false
	}
	dir := path.Dir(name)
	return dir == "ebin" || path.Base(dir) == "ebin"
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
