// Command abc is the CLI front-end for the abc-to-shell compiler: a thin
// cobra command tree that parses flags and calls straight into
// internal/compiler.Compile (spec §1/§6 — the CLI is explicitly out of the
// compiler core's scope).
package main

import (
	"os"

	"github.com/ablang/abc/cmd/abc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
