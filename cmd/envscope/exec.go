package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/abhinav/envscope"
)

// executor implements the "envscope exec" command.
type executor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives progress messages. Nothing is logged if it is nil.
	Logger *log.Logger
}

// Run runs the given command line with the overrides applied to its
// environment.
func (e *executor) Run(opts *overrideOptions, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: envscope exec [OPTIONS] -- COMMAND [ARGS...]")
	}

	scope := envscope.Scope{Logger: e.Logger}
	return scope.Run(func(o *envscope.Overlay) error {
		if err := opts.apply(o); err != nil {
			return err
		}
		for _, name := range o.Names() {
			if _, ok := o.LookupEnv(name); ok {
				e.logf("envscope: set %v", name)
			} else {
				e.logf("envscope: unset %v", name)
			}
		}

		path, err := lookPath(args[0], envscope.Getenv("PATH"))
		if err != nil {
			return err
		}

		cmd := exec.Command(path, args[1:]...)
		cmd.Args[0] = args[0]
		cmd.Env = envscope.Environ()
		cmd.Stdin = e.Stdin
		cmd.Stdout = e.Stdout
		cmd.Stderr = e.Stderr

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
				return &exitCodeError{Code: exitErr.ExitCode()}
			}
			return fmt.Errorf("run %q: %v", args[0], err)
		}
		return nil
	})
}

func (e *executor) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

// lookPath searches for an executable named file in the directories of
// the given PATH value. exec.LookPath can't be used because it reads PATH
// from the real environment.
func lookPath(file, pathEnv string) (string, error) {
	if strings.ContainsRune(file, filepath.Separator) {
		if err := findExecutable(file); err != nil {
			return "", fmt.Errorf("find %q: %v", file, err)
		}
		return file, nil
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}
		path := filepath.Join(dir, file)
		if !strings.ContainsRune(path, filepath.Separator) {
			// Keep exec.Command from searching the real PATH.
			path = "." + string(filepath.Separator) + path
		}
		if findExecutable(path) == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("find %q: executable not found in PATH", file)
}

func findExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode(); mode.IsDir() || mode&0o111 == 0 {
		return fmt.Errorf("%q is not executable", path)
	}
	return nil
}
