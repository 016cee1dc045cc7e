// Package envfile reads environment overrides from YAML files.
//
// A file is a single mapping from variable name to value:
//
//	HOME: /tmp/home
//	DEBUG: 1
//	PAGER: null
//
// Scalars are used as their literal text. A null value marks the variable
// as absent.
package envfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const _nullTag = "!!null"

// Parse reads overrides from a YAML document. Variables mapped to null are
// reported with a nil value.
func Parse(r io.Reader) (map[string]*string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return make(map[string]*string), nil
		}
		return nil, fmt.Errorf("decode: %v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return make(map[string]*string), nil
		}
		root = root.Content[0]
	}

	if root.Kind == yaml.ScalarNode && root.ShortTag() == _nullTag {
		return make(map[string]*string), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of names to values", root.Line)
	}

	overrides := make(map[string]*string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || len(key.Value) == 0 {
			return nil, fmt.Errorf("line %d: variable names must be non-empty strings", key.Line)
		}

		name := key.Value
		if _, dup := overrides[name]; dup {
			return nil, fmt.Errorf("line %d: %q is specified more than once", key.Line, name)
		}

		switch {
		case value.Kind == yaml.ScalarNode && value.ShortTag() == _nullTag:
			overrides[name] = nil
		case value.Kind == yaml.ScalarNode:
			v := value.Value
			overrides[name] = &v
		default:
			return nil, fmt.Errorf("line %d: value of %q must be a scalar or null", value.Line, name)
		}
	}

	return overrides, nil
}

// Load reads overrides from the given files in order. Files listed later
// take precedence. Errors from all files are reported together.
func Load(paths ...string) (map[string]*string, error) {
	overrides := make(map[string]*string)

	var errs error
	for _, path := range paths {
		m, err := loadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		for name, value := range m {
			overrides[name] = value
		}
	}

	if errs != nil {
		return nil, errs
	}
	return overrides, nil
}

func loadFile(path string) (_ map[string]*string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %v", path, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %v", path, err)
	}
	return m, nil
}
