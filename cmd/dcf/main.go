package main

import (
	"os"

	"github.com/alejandrodnm/dcf/cmd/dcf/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
