package envscope

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable indicates that a Hook cannot intercept environment reads,
// either because there is no Hook or because it has nothing installed.
var ErrUnavailable = errors.New("environment is not available for interception")

// Hook is a replaceable Env. Reads through a Hook observe whichever Env is
// currently installed on it.
//
// A Hook is process-wide state when shared. It does not serialize Install
// calls from parallel tests: two overlays installed on the same Hook at
// the same time will see each other. Use WithOverlay to isolate parallel
// tests.
type Hook struct {
	mu  sync.RWMutex
	env Env
}

var _ Env = (*Hook)(nil)

// NewHook builds a Hook with the given Env installed.
func NewHook(env Env) *Hook {
	return &Hook{env: env}
}

// Default is the Hook used by Getenv, LookupEnv, and Environ.
// It starts with the real process environment installed.
var Default = NewHook(System)

// Current returns the Env currently installed on the Hook.
func (h *Hook) Current() Env {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.env
}

// LookupEnv looks up a variable in the installed Env.
func (h *Hook) LookupEnv(name string) (string, bool) {
	return h.Current().LookupEnv(name)
}

// Environ lists the variables of the installed Env.
func (h *Hook) Environ() []string {
	return h.Current().Environ()
}

func (h *Hook) environMap() map[string]string {
	return ToMap(h.Current())
}

// Install installs env on the Hook, returning a function that puts the
// previously installed Env back. The returned function may be called
// multiple times; only the first call has an effect.
//
// Install fails with ErrUnavailable if the Hook cannot be intercepted.
func (h *Hook) Install(env Env) (restore func(), err error) {
	if h == nil {
		return nil, fmt.Errorf("install on nil hook: %w", ErrUnavailable)
	}
	if env == nil {
		return nil, fmt.Errorf("install nil environment: %w", ErrUnavailable)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev := h.env
	if prev == nil {
		return nil, fmt.Errorf("hook has no environment: %w", ErrUnavailable)
	}
	h.env = env

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			h.env = prev
			h.mu.Unlock()
		})
	}, nil
}

// Getenv retrieves the value of the named variable from Default.
// It returns an empty string if the variable is not present.
func Getenv(name string) string {
	v, _ := Default.LookupEnv(name)
	return v
}

// LookupEnv retrieves the value of the named variable from Default and
// reports whether it was present.
func LookupEnv(name string) (string, bool) {
	return Default.LookupEnv(name)
}

// Environ lists the variables visible through Default as "NAME=value"
// pairs.
func Environ() []string {
	return Default.Environ()
}

// EnvironMap lists the variables visible through Default as a map.
func EnvironMap() map[string]string {
	return ToMap(Default)
}
