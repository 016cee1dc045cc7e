package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/abhinav/envscope"
	"go.uber.org/multierr"
)

// printer implements the "envscope print" command.
type printer struct {
	Stdout io.Writer
}

// Run prints the environment visible with the given overrides.
func (p *printer) Run(opts *overrideOptions, names []string) error {
	return (&envscope.Scope{}).Run(func(o *envscope.Overlay) error {
		if err := opts.apply(o); err != nil {
			return err
		}

		env := envscope.EnvironMap()
		if len(names) == 0 {
			for name := range env {
				names = append(names, name)
			}
			sort.Strings(names)
		}

		var err error
		for _, name := range names {
			value, ok := env[name]
			if !ok {
				err = multierr.Append(err, fmt.Errorf("%q is not set", name))
				continue
			}
			if _, werr := fmt.Fprintf(p.Stdout, "%s=%s\n", name, value); werr != nil {
				return werr
			}
		}
		return err
	})
}
