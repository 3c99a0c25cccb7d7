package main

import (
	"os"

	"github.com/REDFOX1899/gpt-cmd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
