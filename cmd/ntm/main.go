// Command ntm simulates nondeterministic Turing machines.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ntm/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	// Commands print their own failures; anything else is a usage error.
	if !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(cli.GetExitCode(err))
}
