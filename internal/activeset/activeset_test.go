// SPDX-License-Identifier: MPL-2.0

package activeset

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func storeIn(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "enabled_plugins.toml"))
}

func TestRead_MissingFileIsEmptySet(t *testing.T) {
	t.Parallel()
	names, err := storeIn(t).Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names != nil {
		t.Errorf("expected nil, got %v", names)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()
	s := storeIn(t)
	if err := s.Write([]string{"beta", "alpha", "beta"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names, err := s.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(names, []string{"alpha", "beta"}) {
		t.Errorf("expected deduplicated sorted set, got %v", names)
	}
}

func TestWrite_CreatesParentDirectory(t *testing.T) {
	t.Parallel()
	s := NewStore(filepath.Join(t.TempDir(), "nested", "dir", "enabled_plugins.toml"))
	if err := s.Write([]string{"p"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestWrite_EmptySet(t *testing.T) {
	t.Parallel()
	s := storeIn(t)
	if err := s.Write(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names, err := s.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty set, got %v", names)
	}
}

func TestWrite_FileCarriesFormatVersion(t *testing.T) {
	t.Parallel()
	s := storeIn(t)
	if err := s.Write([]string{"p"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version = '1.0'") &&
		!strings.Contains(string(data), `version = "1.0"`) {
		t.Errorf("expected format version in file, got:\n%s", data)
	}
}

func TestRead_MalformedFile(t *testing.T) {
	t.Parallel()
	s := storeIn(t)
	if err := os.WriteFile(s.Path(), []byte("plugins = not-toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.Read()
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Op != "read" {
		t.Errorf("expected read-op PersistenceError, got %v", err)
	}
}

func TestWrite_NoTempFileLeftBehind(t *testing.T) {
	t.Parallel()
	s := storeIn(t)
	if err := s.Write([]string{"p"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind after write")
	}
}
