// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"slices"
	"testing"
)

func TestCompareVersions_Lexicographic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "1.0", "1.0", 0},
		{"simple less", "1.0", "2.0", -1},
		{"simple greater", "2.0", "1.0", 1},
		{"lexicographic not numeric", "9", "10", 1},
		{"empty less than anything", "", "0", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CompareVersions(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMerge_KeepsGreaterVersion(t *testing.T) {
	t.Parallel()
	a := []Plugin{{Name: "p", Version: "1"}}
	b := []Plugin{{Name: "p", Version: "2"}}

	merged := Merge(a, b)
	if len(merged) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(merged))
	}
	if merged[0].Version != "2" {
		t.Errorf("expected version 2, got %s", merged[0].Version)
	}
}

func TestMerge_LexicographicNotNumeric(t *testing.T) {
	t.Parallel()
	// "9" > "10" under string comparison; the merge must preserve that.
	merged := Merge([]Plugin{{Name: "p", Version: "9"}}, []Plugin{{Name: "p", Version: "10"}})
	if len(merged) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(merged))
	}
	if merged[0].Version != "9" {
		t.Errorf("expected version 9 (lexicographic winner), got %s", merged[0].Version)
	}
}

func TestMerge_CommutativeOnNames(t *testing.T) {
	t.Parallel()
	a := []Plugin{{Name: "alpha", Version: "1"}, {Name: "beta", Version: "3"}}
	b := []Plugin{{Name: "beta", Version: "2"}, {Name: "gamma", Version: "1"}}

	ab := Names(Merge(a, b))
	ba := Names(Merge(b, a))
	if !slices.Equal(ab, ba) {
		t.Errorf("merge not commutative on names: %v vs %v", ab, ba)
	}
	want := []string{"alpha", "beta", "gamma"}
	if !slices.Equal(ab, want) {
		t.Errorf("expected names %v, got %v", want, ab)
	}
}

func TestMerge_DisjointSets(t *testing.T) {
	t.Parallel()
	merged := Merge(
		[]Plugin{{Name: "b", Version: "1"}},
		[]Plugin{{Name: "a", Version: "1"}},
	)
	if !slices.Equal(Names(merged), []string{"a", "b"}) {
		t.Errorf("expected sorted [a b], got %v", Names(merged))
	}
}

func TestMerge_Empty(t *testing.T) {
	t.Parallel()
	if got := Merge(nil, nil); len(got) != 0 {
		t.Errorf("expected empty merge, got %v", got)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()
	plugins := []Plugin{{Name: "x"}, {Name: "y"}}
	if !slices.Equal(Names(plugins), []string{"x", "y"}) {
		t.Errorf("unexpected names: %v", Names(plugins))
	}
}
