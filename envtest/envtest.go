// Package envtest overrides environment variables for the duration of a
// test without touching the real process environment.
//
//	func TestSomething(t *testing.T) {
//		envtest.Setenv(t, "HOME", t.TempDir())
//		envtest.Unsetenv(t, "XDG_CONFIG_HOME")
//		...
//	}
//
// Overrides are visible to code that reads its environment through
// envscope.Getenv, envscope.LookupEnv, and envscope.Environ. They are
// removed when the test finishes, whether it passes, fails, or panics.
//
// Overrides are installed on a shared envscope.Hook. Tests that use this
// package on the same Hook must not run in parallel with each other; use
// envscope.WithOverlay for parallel tests.
package envtest

import (
	"github.com/abhinav/envscope"
	"github.com/abhinav/envscope/internal/testwriter"
)

// T is a subset of the testing.T interface.
type T interface {
	Cleanup(func())
	Errorf(string, ...interface{})
	FailNow()
	Fatalf(string, ...interface{})
	Helper()
	Logf(string, ...interface{})
}

// Option customizes New.
type Option interface {
	apply(*options)
}

type options struct {
	hook  *envscope.Hook
	quiet bool
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithHook installs the overlay on the given Hook instead of
// envscope.Default.
func WithHook(h *envscope.Hook) Option {
	return optionFunc(func(o *options) { o.hook = h })
}

// Quiet stops New from logging when the overlay is installed and retired.
func Quiet() Option {
	return optionFunc(func(o *options) { o.quiet = true })
}

// New installs a new, empty Overlay for the duration of the current test
// and returns it.
//
// The Overlay is retired and the Hook restored when the test finishes.
// The test fails immediately if the Hook cannot be intercepted.
func New(t T, opts ...Option) *envscope.Overlay {
	t.Helper()

	var cfg options
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	scope := envscope.Scope{Hook: cfg.hook}
	if !cfg.quiet {
		scope.Logger = testwriter.NewLogger(t)
	}

	o, end, err := scope.Begin()
	if err != nil {
		t.Fatalf("override environment: %v", err)
		return nil
	}
	t.Cleanup(end)
	return o
}

// Setenv changes an environment variable's value for the duration of the
// current test.
func Setenv(t T, k, v string, opts ...Option) {
	t.Helper()

	New(t, append([]Option{Quiet()}, opts...)...).Set(k, v)
}

// Unsetenv hides the given environment variable for the duration of the
// current test.
func Unsetenv(t T, k string, opts ...Option) {
	t.Helper()

	New(t, append([]Option{Quiet()}, opts...)...).Unset(k)
}
