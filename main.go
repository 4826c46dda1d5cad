// tcpchat - a two-role TCP chat client.
package main

import (
	"context"
	"fmt"
	"os"

	"tcpchat/cmd"
)

func main() {
	// Interrupts are not wired here: the viewer installs its own
	// handler, the messenger keeps the default termination.
	if err := cmd.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tcpchat: %v\n", err)
		os.Exit(1)
	}
}
