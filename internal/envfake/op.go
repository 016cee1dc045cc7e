package envfake

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
)

type state struct {
	Lookup   func(string) (string, bool)
	Stdout   io.Writer
	ExitCode int
}

// Option configures the behavior of a fake.
type Option interface {
	optionType() optionType
	run(*state) error
}

type wantEnv struct {
	Name  string
	Value string
}

// WantEnv indicates that the fake should expect the named variable to be
// set to exactly the given value. The fake will fail with a non-zero exit
// code if this condition is not met.
func WantEnv(name, value string) Option {
	return &wantEnv{Name: name, Value: value}
}

func (*wantEnv) optionType() optionType {
	return optionTypeWantEnv
}

func (c *wantEnv) run(s *state) error {
	got, ok := s.Lookup(c.Name)
	if !ok {
		return fmt.Errorf("%q is not set, want %q", c.Name, c.Value)
	}
	if diff := cmp.Diff(c.Value, got); len(diff) > 0 {
		return fmt.Errorf("%q mismatch: (-want, +got)\n%s", c.Name, diff)
	}
	return nil
}

type wantUnset struct {
	Name string
}

// WantUnset indicates that the fake should expect the named variable to
// be absent from its environment.
func WantUnset(name string) Option {
	return &wantUnset{Name: name}
}

func (*wantUnset) optionType() optionType {
	return optionTypeWantUnset
}

func (c *wantUnset) run(s *state) error {
	if got, ok := s.Lookup(c.Name); ok {
		return fmt.Errorf("%q must not be set, got %q", c.Name, got)
	}
	return nil
}

type printEnv struct {
	Names []string
}

// Print makes the fake write "NAME=value" to stdout for each of the named
// variables that is set.
func Print(names ...string) Option {
	return &printEnv{Names: names}
}

func (*printEnv) optionType() optionType {
	return optionTypePrint
}

func (c *printEnv) run(s *state) error {
	for _, name := range c.Names {
		v, ok := s.Lookup(name)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(s.Stdout, "%s=%s\n", name, v); err != nil {
			return err
		}
	}
	return nil
}

type exitCode struct {
	Code int
}

// ExitCode configures the exit code of the fake. This is ignored if any
// of the prior operations failed.
func ExitCode(code int) Option {
	return &exitCode{code}
}

func (*exitCode) optionType() optionType {
	return optionTypeExitCode
}

func (c *exitCode) run(s *state) error {
	s.ExitCode = c.Code
	return nil
}
