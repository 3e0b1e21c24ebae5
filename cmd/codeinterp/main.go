package main

import (
	"os"

	"github.com/hassan/codeinterp/cmd/codeinterp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
