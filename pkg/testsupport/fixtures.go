package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/form"
)

// MustReadFixture returns the raw bytes of a fixture file.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// LoadDefinition parses a form definition fixture (JSON or YAML).
func LoadDefinition(t *testing.T, path string) form.Definition {
	t.Helper()

	def, err := LoadDefinitionFromPath(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// LoadDefinitionFromPath returns a Definition without requiring testing.T so
// fixtures can be loaded from setup helpers.
func LoadDefinitionFromPath(path string) (form.Definition, error) {
	if path == "" {
		return form.Definition{}, errors.New("testsupport: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return form.Definition{}, fmt.Errorf("testsupport: read definition: %w", err)
	}
	return form.ParseDefinition(data, path)
}

// MustLoadModel decodes a JSON object fixture into a fresh model map.
func MustLoadModel(t *testing.T, path string) map[string]any {
	t.Helper()

	out := make(map[string]any)
	if err := json.Unmarshal(MustReadFixture(t, path), &out); err != nil {
		t.Fatalf("unmarshal model: %v", err)
	}
	return out
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
