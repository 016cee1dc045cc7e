// envscope prints the environment or runs a command with environment
// overrides applied, without modifying its own environment.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abhinav/envscope"
	flags "github.com/jessevdk/go-flags"
)

func main() {
	log.SetFlags(0)

	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	log.Fatalf("envscope: %+v", err)
}

// exitCodeError reports that a child process exited with a non-zero
// status. envscope exits with the same status.
type exitCodeError struct {
	Code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	parser, opts := newParser()
	args, err := parser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return nil
		}
		return err
	}

	if opts.Version {
		fmt.Fprintf(stdout, "envscope v%s\n", envscope.Version)
		return nil
	}

	if parser.Active == nil {
		parser.WriteHelp(stderr)
		return nil
	}

	logger := log.New(io.Discard, "", 0)
	switch parser.Active.Name {
	case "print":
		p := printer{Stdout: stdout}
		return p.Run(&opts.Print.overrideOptions, append(opts.Print.Args.Names, args...))
	case "exec":
		if opts.Exec.Verbose {
			logger = log.New(stderr, "", 0)
		}
		e := executor{
			Stdin:  stdin,
			Stdout: stdout,
			Stderr: stderr,
			Logger: logger,
		}
		return e.Run(&opts.Exec.overrideOptions, args)
	default:
		return fmt.Errorf("unknown command %q", parser.Active.Name)
	}
}
