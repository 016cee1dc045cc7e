package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhinav/envscope/envtest"
	"github.com/abhinav/envscope/internal/envfake"
	"github.com/abhinav/envscope/internal/iotest"
	"github.com/abhinav/envscope/internal/ostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExec(t *testing.T, stdout, stderr *bytes.Buffer, args ...string) error {
	t.Helper()

	return run(append([]string{"exec"}, args...), new(bytes.Buffer), stdout, stderr)
}

func TestExec(t *testing.T) {
	envtest.Setenv(t, "ENVSCOPE_CLI_GONE", "x")
	envtest.Setenv(t, "ENVSCOPE_CLI_KEPT", "kept")
	realEnv := ostest.Snapshot(t)

	fake := envfake.New(t,
		envfake.WantEnv("dummy name", "dummy value"),
		envfake.WantEnv("ENVSCOPE_CLI_KEPT", "kept"),
		envfake.WantUnset("ENVSCOPE_CLI_GONE"),
		envfake.Print("dummy name"),
	)

	var stdout, stderr bytes.Buffer
	args := []string{
		"-e", fake.ConfigEnv,
		"-e", "dummy name=dummy value",
		"-u", "ENVSCOPE_CLI_GONE",
		"--",
	}
	err := runExec(t, &stdout, &stderr, append(args, fake.Command...)...)
	require.NoError(t, err, "stderr: %s", stderr.String())

	assert.Equal(t, "dummy name=dummy value\n", stdout.String())
	assert.Equal(t, realEnv, ostest.Snapshot(t),
		"real environment must be unchanged")
}

func TestExec_ExitCode(t *testing.T) {
	fake := envfake.New(t, envfake.ExitCode(3))

	var stdout, stderr bytes.Buffer
	args := append([]string{"-e", fake.ConfigEnv, "--"}, fake.Command...)
	err := runExec(t, &stdout, &stderr, args...)
	assert.Equal(t, 3, exitCodeOf(t, err))
}

func TestExec_ChildSeesMismatch(t *testing.T) {
	fake := envfake.New(t, envfake.WantEnv("ENVSCOPE_CLI_WANTED", "yes"))

	var stdout, stderr bytes.Buffer
	args := append([]string{
		"-e", fake.ConfigEnv,
		"-e", "ENVSCOPE_CLI_WANTED=no",
		"--",
	}, fake.Command...)
	err := runExec(t, &stdout, &stderr, args...)

	assert.Equal(t, 1, exitCodeOf(t, err))
	assert.Contains(t, stderr.String(), "ENVSCOPE_CLI_WANTED")
}

func TestExec_Verbose(t *testing.T) {
	fake := envfake.New(t)

	var stdout, stderr bytes.Buffer
	args := append([]string{
		"-v",
		"-e", fake.ConfigEnv,
		"-e", "ENVSCOPE_CLI_V=1",
		"-u", "ENVSCOPE_CLI_U",
		"--",
	}, fake.Command...)
	require.NoError(t, runExec(t, &stdout, &stderr, args...))

	assert.Contains(t, stderr.String(), "envscope: set ENVSCOPE_CLI_V")
	assert.Contains(t, stderr.String(), "envscope: unset ENVSCOPE_CLI_U")
	assert.Contains(t, stderr.String(), "overlay retired")
}

func TestExecutor_NoLogger(t *testing.T) {
	envtest.Setenv(t, "ENVSCOPE_CLI_U", "x")
	fake := envfake.New(t,
		envfake.WantEnv("ENVSCOPE_CLI_V", "1"),
		envfake.WantUnset("ENVSCOPE_CLI_U"),
	)

	var stdout, stderr bytes.Buffer
	e := executor{
		Stdin:  new(bytes.Buffer),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	opts := overrideOptions{
		Set:   []string{fake.ConfigEnv, "ENVSCOPE_CLI_V=1"},
		Unset: []string{"ENVSCOPE_CLI_U"},
	}
	require.NotPanics(t, func() {
		require.NoError(t, e.Run(&opts, fake.Command), "stderr: %s", stderr.String())
	})
}

func TestExec_NoCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runExec(t, &stdout, &stderr, "-e", "A=1")
	errorMustContain(t, err, "usage")
}

func TestExec_UsesOverlayPath(t *testing.T) {
	dir := t.TempDir()
	script := iotest.WriteFile(t, dir, "envscope-test-tool", "#!/bin/sh\necho \"$ENVSCOPE_CLI_MSG\"\n")
	require.NoError(t, os.Chmod(script, 0o755))

	var stdout bytes.Buffer
	err := runExec(t, &stdout, new(bytes.Buffer),
		"-e", "PATH="+dir+string(filepath.ListSeparator)+"/bin:/usr/bin",
		"-e", "ENVSCOPE_CLI_MSG=hello",
		"--", "envscope-test-tool")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout.String())
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	exe := iotest.WriteFile(t, dir, "tool", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(exe, 0o755))
	iotest.WriteFile(t, dir, "data", "not executable")

	t.Run("found", func(t *testing.T) {
		got, err := lookPath("tool", "/does-not-exist"+string(filepath.ListSeparator)+dir)
		require.NoError(t, err)
		assert.Equal(t, exe, got)
	})

	t.Run("not executable", func(t *testing.T) {
		_, err := lookPath("data", dir)
		errorMustContain(t, err, "not found")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := lookPath("tool", "")
		assert.Error(t, err)
	})

	t.Run("path with separator", func(t *testing.T) {
		got, err := lookPath(exe, "")
		require.NoError(t, err)
		assert.Equal(t, exe, got)

		_, err = lookPath(filepath.Join(dir, "data"), "")
		errorMustContain(t, err, "not executable")
	})
}
