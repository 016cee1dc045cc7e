//go:build tools
// +build tools

package envscope

import (
	_ "github.com/golang/mock/mockgen"
	_ "golang.org/x/lint/golint"
	_ "honnef.co/go/tools/cmd/staticcheck"
)
