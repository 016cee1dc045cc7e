// Package envfake provides a means of building a configurable fake
// executable that checks the environment it was started with.
//
// It works by hooking into the entry point of the current test executable
// with TryMain.
package envfake

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/abhinav/envscope/internal/iotest"
	"github.com/abhinav/envscope/internal/test"
	"github.com/stretchr/testify/require"
)

// ConfigVar is the environment variable through which the fake finds its
// configuration.
const ConfigVar = "TEST_ENVFAKE_CONFIG"

// TryMain is the entry point for the fake. It runs the fake's behavior if
// inside a fake environment.
//
// Use this in TestMain before calling m.Run().
//
//	func TestMain(m *testing.M) {
//	  envfake.TryMain()
//
//	  os.Exit(m.Run())
//	}
//
// This is a no-op if not inside a fake environment.
func TryMain() {
	cfgFile := os.Getenv(ConfigVar)
	if len(cfgFile) == 0 {
		return
	}

	code, err := main(cfgFile)
	if err != nil {
		log.SetFlags(0)
		log.Fatalf("envfake: %+v", err)
	}

	os.Exit(code)
}

type optionType int

const (
	optionTypeWantEnv optionType = iota + 1
	optionTypeWantUnset
	optionTypePrint
	optionTypeExitCode
)

type opConfig struct {
	Type  optionType
	Value Option
}

func (cfg *opConfig) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type  *optionType
		Value json.RawMessage
	}
	raw.Type = &cfg.Type // deserialize into cfg.Type

	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch cfg.Type {
	case optionTypeWantEnv:
		cfg.Value = new(wantEnv)
	case optionTypeWantUnset:
		cfg.Value = new(wantUnset)
	case optionTypePrint:
		cfg.Value = new(printEnv)
	case optionTypeExitCode:
		cfg.Value = new(exitCode)
	default:
		return fmt.Errorf("unknown op type: %v", cfg.Type)
	}

	return json.Unmarshal(raw.Value, cfg.Value)
}

type config struct {
	Ops []opConfig
}

// Fake is a fake executable built by New.
type Fake struct {
	// Command line that runs the fake.
	Command []string

	// "NAME=value" pair that must be present in the fake's environment
	// for it to run. Without it, the test executable runs the tests
	// instead.
	ConfigEnv string
}

// New builds a new fake executable that runs the provided operations.
func New(t test.T, ops ...Option) *Fake {
	t.Helper()

	// Detect invocation of envfake.New inside a fake. This happens if we
	// don't install this in TestMain.
	cfgFile := os.Getenv(ConfigVar)
	require.Empty(t, cfgFile,
		"already inside a fake (%v=%v):\n"+
			"did you forget to call envfake.TryMain?", ConfigVar, cfgFile)

	var cfg config
	for _, op := range ops {
		cfg.Ops = append(cfg.Ops, opConfig{
			Type:  op.optionType(),
			Value: op,
		})
	}

	testExe, err := os.Executable()
	require.NoError(t, err, "determine test executable")

	f := iotest.TempFile(t, "envfake-config")
	defer f.Close()

	require.NoError(t, json.NewEncoder(f).Encode(cfg),
		"encode fake config")

	return &Fake{
		Command:   []string{testExe},
		ConfigEnv: ConfigVar + "=" + f.Name(),
	}
}

func main(cfgFile string) (int, error) {
	f, err := os.Open(cfgFile)
	if err != nil {
		return 0, fmt.Errorf("open config: %v", err)
	}
	defer f.Close()

	var cfg config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return 0, fmt.Errorf("decode config: %v", err)
	}

	s := state{
		Lookup: os.LookupEnv,
		Stdout: os.Stdout,
	}
	for _, op := range cfg.Ops {
		if err := op.Value.run(&s); err != nil {
			return 0, err
		}
	}

	return s.ExitCode, nil
}
