// Package ostest changes the real process environment for tests.
//
// Use this only to arrange the true environment that an overlay sits on
// top of. Code under test should be overridden with envtest instead.
package ostest

import (
	"os"
	"strings"

	"github.com/abhinav/envscope/internal/test"
)

// Setenv changes an environment variable's value for the duration of the
// current test.
//
// It automatically restores the previous value, if any, after the test
// finishes.
func Setenv(t test.T, k, v string) {
	t.Helper()

	restoreLater(t, k)
	if err := os.Setenv(k, v); err != nil {
		t.Fatalf("set %q: %v", k, err)
	}
}

// Unsetenv unsets the given environment variable for the duration of the
// current test.
//
// It automatically restores the previous value, if any, after the test
// finishes.
func Unsetenv(t test.T, k string) {
	t.Helper()

	restoreLater(t, k)
	if err := os.Unsetenv(k); err != nil {
		t.Fatalf("unset %q: %v", k, err)
	}
}

func restoreLater(t test.T, k string) {
	t.Helper()

	if oldv, ok := os.LookupEnv(k); ok {
		t.Cleanup(func() {
			if err := os.Setenv(k, oldv); err != nil {
				t.Errorf("restore %q: %v", k, err)
			}
		})
	} else {
		t.Cleanup(func() {
			if err := os.Unsetenv(k); err != nil {
				t.Errorf("restore %q: %v", k, err)
			}
		})
	}
}

// Snapshot returns a copy of the real process environment.
func Snapshot(t test.T) map[string]string {
	t.Helper()

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || len(k) == 0 {
			continue
		}
		if _, dup := env[k]; !dup {
			env[k] = v
		}
	}
	return env
}
