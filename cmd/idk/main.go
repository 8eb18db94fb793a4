// Package main is the entry point of the idk toolchain.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/paratym/idk/cmd/idk/pkg/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintf(os.Stderr, "idk: %v\n", err)
		}
		os.Exit(1)
	}
}
