// SPDX-License-Identifier: MPL-2.0

// Package eztest builds throwaway plugin archives for tests.
package eztest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Descriptor renders an application resource term for the given plugin.
func Descriptor(name, vsn, description string, apps ...string) string {
	quoted := make([]string, 0, len(apps))
	quoted = append(quoted, "kernel", "stdlib")
	quoted = append(quoted, apps...)
	return fmt.Sprintf(
		"{application, %s,\n [{description, %q},\n  {vsn, %q},\n  {applications, [%s]}\n ]}.\n",
		name, description, vsn, strings.Join(quoted, ", "),
	)
}

// ArchiveBytes builds an in-memory .ez archive containing the given entries
// (path -> contents).
func ArchiveBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// ArchiveBytesOrdered builds an in-memory .ez archive from alternating
// path/contents pairs, preserving entry order. Use this when listing order
// matters (descriptor selection).
func ArchiveBytesOrdered(t *testing.T, pairs ...string) []byte {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("ArchiveBytesOrdered needs path/contents pairs")
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := 0; i < len(pairs); i += 2 {
		w, err := zw.Create(pairs[i])
		if err != nil {
			t.Fatalf("create zip entry %s: %v", pairs[i], err)
		}
		if _, err := w.Write([]byte(pairs[i+1])); err != nil {
			t.Fatalf("write zip entry %s: %v", pairs[i], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// WriteArchive writes a well-formed plugin archive for name/vsn into dir and
// returns its path. deps become entries in the descriptor's applications list
// after the implicit kernel and stdlib.
func WriteArchive(t *testing.T, dir, name, vsn string, deps ...string) string {
	t.Helper()
	entry := fmt.Sprintf("%s-%s/ebin/%s.app", name, vsn, name)
	data := ArchiveBytes(t, map[string]string{
		entry: Descriptor(name, vsn, name+" plugin", deps...),
	})
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.ez", name, vsn))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write archive %s: %v", path, err)
	}
	return path
}

// WriteCorruptArchive writes a file with the .ez suffix that is not a valid
// ZIP container.
func WriteCorruptArchive(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name+".ez")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write corrupt archive %s: %v", path, err)
	}
	return path
}
