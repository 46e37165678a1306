package main

import (
	"os"

	"github.com/avdva/fixedpoint/cmd/fxplot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
