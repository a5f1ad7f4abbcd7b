package main

import (
	"os"

	"github.com/spigell/interviu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
