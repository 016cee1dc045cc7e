// Package iotest provides file helpers for tests.
package iotest

import (
	"os"
	"path/filepath"

	"github.com/abhinav/envscope/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TempFile creates a new temporary file inside the current test context.
//
// It deletes the file when the test finishes.
func TempFile(t test.T, prefix string) *os.File {
	t.Helper()

	f, err := os.CreateTemp("", prefix)
	require.NoError(t, err, "make tempfile")
	name := f.Name()

	t.Cleanup(func() {
		if err := f.Close(); err != nil {
			assert.ErrorIs(t, err, os.ErrClosed,
				"close tempfile %q", name)
		}

		assert.NoError(t, os.Remove(name),
			"delete tempfile %q", name)
	})

	return f
}

// WriteFile writes body to a file named name inside dir and returns its
// path.
func WriteFile(t test.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t,
		os.WriteFile(path, []byte(body), 0o644),
		"write %q", path)
	return path
}

// ReadFile is a shortcut to os.ReadFile for tests.
func ReadFile(t test.T, path string) string {
	t.Helper()

	body, err := os.ReadFile(path)
	require.NoError(t, err, "read %q", path)
	return string(body)
}
