package main

import (
	"os"

	"github.com/iwvelando/poverty-level/cmd/fpl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
