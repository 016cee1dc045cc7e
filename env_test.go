package envscope

import (
	"testing"

	"github.com/abhinav/envscope/internal/ostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		give      string
		wantName  string
		wantValue string
		wantOK    bool
	}{
		{give: "FOO=bar", wantName: "FOO", wantValue: "bar", wantOK: true},
		{give: "FOO=", wantName: "FOO", wantValue: "", wantOK: true},
		{give: "FOO=a=b", wantName: "FOO", wantValue: "a=b", wantOK: true},
		{give: "=C:=C:\\foo", wantName: "=C:", wantValue: "C:\\foo", wantOK: true},
		{give: "dummy name=dummy value", wantName: "dummy name", wantValue: "dummy value", wantOK: true},
		{give: "FOO", wantOK: false},
		{give: "", wantOK: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			name, value, ok := splitEntry(tt.give)
			require.Equal(t, tt.wantOK, ok, "ok mismatch")
			if !ok {
				return
			}
			assert.Equal(t, tt.wantName, name, "name mismatch")
			assert.Equal(t, tt.wantValue, value, "value mismatch")
		})
	}
}

func TestSystem(t *testing.T) {
	ostest.Setenv(t, "ENVSCOPE_TEST_SYSTEM", "hello")
	ostest.Unsetenv(t, "ENVSCOPE_TEST_SYSTEM_MISSING")

	t.Run("LookupEnv", func(t *testing.T) {
		v, ok := System.LookupEnv("ENVSCOPE_TEST_SYSTEM")
		assert.True(t, ok, "variable must be present")
		assert.Equal(t, "hello", v)

		_, ok = System.LookupEnv("ENVSCOPE_TEST_SYSTEM_MISSING")
		assert.False(t, ok, "variable must be absent")
	})

	t.Run("Environ", func(t *testing.T) {
		env := System.Environ()
		assert.Contains(t, env, "ENVSCOPE_TEST_SYSTEM=hello")

		seen := make(map[string]struct{})
		for _, kv := range env {
			name, _, ok := splitEntry(kv)
			require.True(t, ok, "malformed entry %q", kv)
			_, dup := seen[name]
			assert.False(t, dup, "duplicate name %q", name)
			seen[name] = struct{}{}
		}
	})
}

func TestToMap(t *testing.T) {
	env := staticEnv{"FOO=bar", "EMPTY=", "EQ=a=b"}
	assert.Equal(t, map[string]string{
		"FOO":   "bar",
		"EMPTY": "",
		"EQ":    "a=b",
	}, ToMap(env))
}

// staticEnv is an Env backed by a fixed list of entries.
type staticEnv []string

func (e staticEnv) LookupEnv(name string) (string, bool) {
	for _, kv := range e {
		if n, v, ok := splitEntry(kv); ok && n == name {
			return v, true
		}
	}
	return "", false
}

func (e staticEnv) Environ() []string {
	return append([]string(nil), e...)
}
