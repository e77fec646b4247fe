package main

import (
	"os"

	"github.com/lib-shared/lib-shared/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
