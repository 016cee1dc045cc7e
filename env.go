// Package envscope provides scoped, non-destructive overrides of the process
// environment.
//
// Code that wants its environment to be overridable reads it through
// Getenv, LookupEnv, and Environ in this package instead of the os package.
// Tests then layer an Overlay on top of the real environment for their
// duration; the real environment is never written to.
package envscope

import (
	"os"
	"strings"
)

//go:generate mockgen -destination=internal/envmock/env.go -package=envmock github.com/abhinav/envscope Env

// Env provides read access to a set of environment variables.
type Env interface {
	// LookupEnv reports the value of the named variable and whether it is
	// present.
	//
	// See os.LookupEnv.
	LookupEnv(name string) (string, bool)

	// Environ lists all variables as "NAME=value" pairs. Names are unique.
	//
	// Variables whose names cannot be written in this form, because they
	// are empty or contain "=" after the first byte, are left out. Use
	// ToMap to list every variable.
	//
	// See os.Environ.
	Environ() []string
}

// mapEnv is implemented by Envs that can list their variables without
// going through "NAME=value" pairs.
type mapEnv interface {
	environMap() map[string]string
}

// System is the real environment of the current process.
var System Env = systemEnv{}

type systemEnv struct{}

func (systemEnv) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (systemEnv) Environ() []string {
	// The process environment may contain duplicates.
	// os.Getenv reports the first one so we keep that.
	env := os.Environ()
	seen := make(map[string]struct{}, len(env))
	out := env[:0]
	for _, kv := range env {
		name, _, ok := splitEntry(kv)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, kv)
	}
	return out
}

// ToMap collects the variables of the given Env into a map.
//
// Unlike Environ, this includes overrides whose names cannot be written
// as "NAME=value".
func ToMap(e Env) map[string]string {
	if me, ok := e.(mapEnv); ok {
		return me.environMap()
	}

	env := e.Environ()
	m := make(map[string]string, len(env))
	for _, kv := range env {
		if name, value, ok := splitEntry(kv); ok {
			m[name] = value
		}
	}
	return m
}

// splitEntry splits a "NAME=value" pair.
//
// On Windows, the environment holds entries like "=C:=C:\foo" so the
// separator search starts after the first byte.
func splitEntry(kv string) (name, value string, ok bool) {
	if len(kv) == 0 {
		return "", "", false
	}
	i := strings.IndexByte(kv[1:], '=')
	if i < 0 {
		return "", "", false
	}
	i++
	return kv[:i], kv[i+1:], true
}

// representable reports whether a variable with the given name survives a
// round trip through joinEntry and splitEntry.
func representable(name string) bool {
	return len(name) > 0 && strings.IndexByte(name[1:], '=') < 0
}

func joinEntry(name, value string) string {
	return name + "=" + value
}
