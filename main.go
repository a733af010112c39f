package main

import (
	"os"

	"github.com/rjoshi/studyops/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
