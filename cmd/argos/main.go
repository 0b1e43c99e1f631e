package main

import (
	"os"

	"github.com/minsuk/argos/cmd/argos/commands"
)

// main is the entry point for the Argos CLI: go run ./cmd/argos [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
