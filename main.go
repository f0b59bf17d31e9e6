package main

import (
	"os"

	"github.com/sdutta/afsmeter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
