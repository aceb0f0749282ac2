// Package main is the entry point for the fmf CLI.
package main

import (
	"os"

	"github.com/thoreinstein/fmf/cmd/fmf/commands"
)

func main() {
	os.Exit(commands.Execute())
}
