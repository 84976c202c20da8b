package main

import (
	"os"

	"github.com/exkit/exnew/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
