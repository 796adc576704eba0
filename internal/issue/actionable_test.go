// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "enable plugins"},
			want: "failed to enable plugins",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "scan plugin directory", Resource: "/opt/plugins"},
			want: "failed to scan plugin directory: /opt/plugins",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "read enabled-plugin list",
				Resource:  "enabled_plugins.toml",
				Cause:     errors.New("permission denied"),
			},
			want: "failed to read enabled-plugin list: enabled_plugins.toml: permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("copy archive").
		WithResource("a-1.0.ez").
		WithSuggestion("Check disk space").
		WithSuggestion("Check permissions").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("expected non-nil error")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrappable")
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("expected 2 suggestions, got %d", len(err.Suggestions))
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()
	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("expected nil error without operation, got %v", err)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()
	err := NewErrorContext().
		WithOperation("enable plugins").
		WithSuggestion("Run 'plugman list' to see available plugins").
		Wrap(errors.New("inner")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "•") {
		t.Error("expected suggestion bullet in output")
	}
	if strings.Contains(plain, "Error chain") {
		t.Error("error chain must only appear in verbose mode")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "inner") {
		t.Errorf("expected error chain in verbose output, got %q", verbose)
	}
}
