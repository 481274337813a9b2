//go:build tools
// +build tools

// Package tools pins the code generators used by go generate.
package client

import (
	_ "go.uber.org/mock/mockgen"
)
