package main

import (
	"os"

	"threadbound/cmd/threadctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
