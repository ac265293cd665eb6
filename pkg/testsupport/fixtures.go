// Package testsupport holds fixture and golden helpers shared by tests.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/goliatone/go-movieform/pkg/model"
)

// MustLoadResponse loads a JSON fixture into a response envelope.
func MustLoadResponse(t *testing.T, path string) model.Response {
	t.Helper()

	resp, err := LoadResponse(path)
	if err != nil {
		t.Fatalf("load response: %v", err)
	}
	return resp
}

// LoadResponse reads a JSON fixture into a response envelope, returning an
// error for callers managing setup outside of *testing.T.
func LoadResponse(path string) (model.Response, error) {
	if path == "" {
		return model.Response{}, errors.New("testsupport: response path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Response{}, fmt.Errorf("testsupport: read response: %w", err)
	}
	var out model.Response
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Response{}, fmt.Errorf("testsupport: unmarshal response: %w", err)
	}
	return out, nil
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}
