package main

import (
	"os"

	"github.com/dedzsinator/go-matrix/cmd/matrix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
