package main

import (
	"os"

	"github.com/ariel-frischer/whatsnew/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
