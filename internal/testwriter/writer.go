// Package testwriter provides an io.Writer that logs to a test.
package testwriter

import (
	"bytes"
	"io"
	"log"
)

// T is the part of testing.T used by Writer.
type T interface {
	Helper()
	Logf(string, ...interface{})
}

// Writer writes output to the given testing.T.
type Writer struct {
	t T
}

var _ io.Writer = (*Writer)(nil)

// New builds a new test Writer.
func New(t T) *Writer {
	return &Writer{t: t}
}

// NewLogger builds a logger that writes to the given testing.T.
func NewLogger(t T) *log.Logger {
	return log.New(New(t), "", 0)
}

func (w *Writer) Write(b []byte) (int, error) {
	w.t.Helper()
	n := len(b)

	// A trailing newline would produce an empty final line.
	b = bytes.TrimSuffix(b, []byte("\n"))

	// Break multi-line input across multiple lines to ensure that
	// everything is decorated with test and file information.
	for _, line := range bytes.Split(b, []byte("\n")) {
		w.t.Logf("%s", line)
	}
	return n, nil
}
