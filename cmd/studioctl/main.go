package main

import (
	"os"

	"github.com/srgjo27/studio_booking/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
