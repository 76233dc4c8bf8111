// Command blueprint renders YAML scenes through Blueprint on the headless
// platform and prints the resulting view tree.
package main

import (
	"os"

	"github.com/go-drift/blueprint/cmd/blueprint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
