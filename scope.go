package envscope

import (
	"fmt"
	"log"
	"sync"
)

// Scope installs an Overlay on a Hook for a bounded region of code and
// guarantees that it is removed afterwards.
//
//	err := (&envscope.Scope{}).Run(func(o *envscope.Overlay) error {
//		o.Set("HOME", dir)
//		return doSomething()
//	})
type Scope struct {
	// Hook on which the Overlay is installed.
	//
	// Defaults to Default.
	Hook *Hook

	// Receives a line when the scope begins and ends.
	//
	// This field is optional.
	Logger *log.Logger
}

func (s *Scope) hook() *Hook {
	if s.Hook == nil {
		return Default
	}
	return s.Hook
}

func (s *Scope) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

// Begin creates an empty Overlay on top of the Hook's current Env and
// installs it. The returned end function retires the Overlay and
// restores the Hook; it must be called exactly when the scope is over,
// typically with defer. Calling end more than once is safe.
//
// Begin fails if the Hook is unavailable. Nothing is installed in that
// case.
func (s *Scope) Begin() (o *Overlay, end func(), err error) {
	h := s.hook()

	var base Env
	if h != nil {
		base = h.Current()
	}
	if base == nil {
		return nil, nil, fmt.Errorf("begin scope: %w", ErrUnavailable)
	}

	o = NewOverlay(base)
	restore, err := h.Install(o)
	if err != nil {
		return nil, nil, fmt.Errorf("begin scope: %w", err)
	}
	s.logf("envscope: overlay installed")

	var once sync.Once
	end = func() {
		once.Do(func() {
			names := o.Names()
			o.Retire()
			restore()
			s.logf("envscope: overlay retired, discarded %d override(s): %q", len(names), names)
		})
	}
	return o, end, nil
}

// Run runs body with a fresh Overlay installed on the Hook. The Overlay
// is retired and the Hook restored when body returns, whether it returns
// an error, panics, or calls runtime.Goexit.
//
// The error returned by body is returned as-is. Panics propagate
// unchanged after cleanup.
func (s *Scope) Run(body func(*Overlay) error) error {
	o, end, err := s.Begin()
	if err != nil {
		return err
	}
	defer end()

	return body(o)
}
