// Package main provides the restoreport CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/restoreport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
