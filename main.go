package main

import (
	"os"

	"github.com/vanditkanudia/gridgap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
