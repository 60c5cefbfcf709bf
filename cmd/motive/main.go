// Command motive is the Motive animation toolkit CLI.
package main

import (
	"os"

	"github.com/go-motive/motive/cmd/motive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
