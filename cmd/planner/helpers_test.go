package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/studyplanner/planner/internal/domain"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: ExitSuccess,
		},
		{
			name:     "task not found",
			err:      domain.NewTaskNotFoundError("t-1"),
			expected: ExitTaskNotFound,
		},
		{
			name:     "validation failed",
			err:      domain.NewValidationError([]string{"title is required"}),
			expected: ExitValidationFailed,
		},
		{
			name:     "invalid import",
			err:      domain.NewInvalidImportError("not an array"),
			expected: ExitInvalidImport,
		},
		{
			name:     "confirmation required",
			err:      domain.NewConfirmationRequiredError("delete task t-1"),
			expected: ExitGeneralError,
		},
		{
			name:     "internal error",
			err:      domain.NewInternalError(errors.New("disk full")),
			expected: ExitGeneralError,
		},
		{
			name:     "config error",
			err:      &configError{err: errors.New("invalid port 0")},
			expected: ExitConfigError,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("edit: %w", domain.NewTaskNotFoundError("t-1")),
			expected: ExitTaskNotFound,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mapErrorToExitCode(tt.err)
			if result != tt.expected {
				t.Errorf("mapErrorToExitCode() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false},
		{"y", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			var out strings.Builder
			c := newPromptConfirmer(strings.NewReader(tt.input), &out)

			got, err := c.Confirm(context.Background(), "Delete this task?")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Confirm() = %v, expected %v", got, tt.expected)
			}
			if out.String() != "Delete this task? [y/N] " {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestPromptConfirmer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	c := newPromptConfirmer(strings.NewReader("y\n"), &out)
	if _, err := c.Confirm(ctx, "Delete this task?"); err == nil {
		t.Error("expected error for cancelled context")
	}
	if out.Len() != 0 {
		t.Errorf("should not prompt after cancel, got %q", out.String())
	}
}

func TestValidationDetails(t *testing.T) {
	err := fmt.Errorf("add: %w", domain.NewValidationError([]string{"title is required", "time must be HH:MM"}))

	details := validationDetails(err)
	if len(details) != 2 {
		t.Fatalf("validationDetails() = %v, expected 2 details", details)
	}
	if validationDetails(domain.NewTaskNotFoundError("t-1")) != nil {
		t.Error("non-validation errors should have no details")
	}
}

func TestResolveConfig_PlannerFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	old := plannerName
	t.Cleanup(func() { plannerName = old })

	plannerName = "biology"
	cfg, err := resolveConfig()
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	if cfg.Planner != "biology" {
		t.Errorf("Planner = %q, expected biology", cfg.Planner)
	}

	plannerName = "../escape"
	_, err = resolveConfig()
	if mapErrorToExitCode(err) != ExitConfigError {
		t.Errorf("invalid planner name should be a config error, got %v", err)
	}
}
