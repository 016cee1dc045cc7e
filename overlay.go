package envscope

import (
	"sort"
	"sync"
)

// Overlay is a set of environment overrides layered on top of another
// Env. The underlying Env is never modified and is consulted on every
// read that the Overlay does not answer itself.
//
// An Overlay starts out active. Once retired with Retire, it drops its
// overrides and becomes transparent: all reads fall through to the
// underlying Env and further changes are ignored.
type Overlay struct {
	base Env

	mu      sync.RWMutex
	entries map[string]entry
	retired bool
}

var _ Env = (*Overlay)(nil)

// entry is an override for a single variable.
// If unset is true, the variable is hidden and value is meaningless.
type entry struct {
	value string
	unset bool
}

// NewOverlay builds an empty Overlay on top of the given Env.
func NewOverlay(base Env) *Overlay {
	return &Overlay{
		base:    base,
		entries: make(map[string]entry),
	}
}

// Set overrides the value of the named variable, replacing any earlier
// override for it.
func (o *Overlay) Set(name, value string) {
	o.put(name, entry{value: value})
}

// Unset hides the named variable. It will not be reported by LookupEnv
// or Environ even if the underlying Env has it.
func (o *Overlay) Unset(name string) {
	o.put(name, entry{unset: true})
}

// Apply records a batch of overrides. Names mapped to nil are unset.
func (o *Overlay) Apply(overrides map[string]*string) {
	for name, value := range overrides {
		if value == nil {
			o.Unset(name)
		} else {
			o.Set(name, *value)
		}
	}
}

func (o *Overlay) put(name string, e entry) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.retired {
		return
	}
	o.entries[name] = e
}

// LookupEnv reports the overridden value of the named variable, or the
// value in the underlying Env if there is no override for it.
func (o *Overlay) LookupEnv(name string) (string, bool) {
	o.mu.RLock()
	e, ok := o.entries[name]
	o.mu.RUnlock()

	if !ok {
		return o.base.LookupEnv(name)
	}
	if e.unset {
		return "", false
	}
	return e.value, true
}

// Environ lists the variables of the underlying Env with overrides
// applied. Overridden variables keep their position; variables that only
// exist in the Overlay are appended in sorted order.
//
// Overrides whose names cannot be written as "NAME=value" are left out.
// They are still reported by LookupEnv and ToMap.
func (o *Overlay) Environ() []string {
	entries := o.snapshot()

	base := o.base.Environ()
	env := make([]string, 0, len(base)+len(entries))
	for _, kv := range base {
		name, _, ok := splitEntry(kv)
		if !ok {
			continue
		}

		e, ok := entries[name]
		if !ok {
			env = append(env, kv)
			continue
		}

		delete(entries, name)
		if !e.unset {
			env = append(env, joinEntry(name, e.value))
		}
	}

	added := make([]string, 0, len(entries))
	for name, e := range entries {
		if !e.unset && representable(name) {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	for _, name := range added {
		env = append(env, joinEntry(name, entries[name].value))
	}

	return env
}

func (o *Overlay) environMap() map[string]string {
	entries := o.snapshot()

	m := ToMap(o.base)
	for name, e := range entries {
		if e.unset {
			delete(m, name)
		} else {
			m[name] = e.value
		}
	}
	return m
}

// snapshot copies the current overrides.
func (o *Overlay) snapshot() map[string]entry {
	o.mu.RLock()
	defer o.mu.RUnlock()

	entries := make(map[string]entry, len(o.entries))
	for name, e := range o.entries {
		entries[name] = e
	}
	return entries
}

// Names returns the sorted names of all variables overridden by this
// Overlay, including unset ones.
func (o *Overlay) Names() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	names := make([]string, 0, len(o.entries))
	for name := range o.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Retire discards all overrides. Calling Retire more than once has no
// additional effect.
func (o *Overlay) Retire() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.retired = true
	o.entries = nil
}

// Retired reports whether Retire has been called.
func (o *Overlay) Retired() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.retired
}
