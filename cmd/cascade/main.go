// Command cascade lints stylesheets and explains how property values
// resolve for the built-in view kinds.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/cascade/cmd/cascade/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
