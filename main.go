package main

import (
	"os"

	"github.com/abhisek/ga4tutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
