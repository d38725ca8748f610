package main

import (
	"os"

	"github.com/arthur-debert/implx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
