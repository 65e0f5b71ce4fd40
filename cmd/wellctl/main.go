// Package main provides wellctl, the operator CLI for well data fixtures,
// one-shot document extraction and coordinate conversion.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
