package main

import (
	"os"

	"autocorrect/cmd/autocorrect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
