package main

import (
	"os"

	"github.com/mmynk/billwise/cmd/billctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
