// Package test defines the subset of testing.T used by test helpers in
// this module.
package test

// T is a subset of the testing.T interface.
type T interface {
	Cleanup(func())
	Errorf(string, ...interface{})
	FailNow()
	Fatalf(string, ...interface{})
	Helper()
	Logf(string, ...interface{})
}
