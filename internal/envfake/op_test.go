package envfake

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupIn(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestWantEnv(t *testing.T) {
	s := state{Lookup: lookupIn(map[string]string{"dummy name": "dummy value"})}

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, WantEnv("dummy name", "dummy value").run(&s))
	})

	t.Run("mismatch", func(t *testing.T) {
		assert.Error(t, WantEnv("dummy name", "other").run(&s))
	})

	t.Run("missing", func(t *testing.T) {
		err := WantEnv("missing", "").run(&s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not set")
	})
}

func TestWantUnset(t *testing.T) {
	s := state{Lookup: lookupIn(map[string]string{"PAGER": "less"})}

	assert.NoError(t, WantUnset("EDITOR").run(&s))
	assert.Error(t, WantUnset("PAGER").run(&s))
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	s := state{
		Lookup: lookupIn(map[string]string{"A": "1", "B": ""}),
		Stdout: &out,
	}

	require.NoError(t, Print("B", "MISSING", "A").run(&s))
	assert.Equal(t, "B=\nA=1\n", out.String())
}

func TestExitCode(t *testing.T) {
	var s state
	assert.NoError(t, ExitCode(2).run(&s))
	assert.Equal(t, 2, s.ExitCode, "unexpected exit code")
}
