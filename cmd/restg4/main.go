// Command restg4 resolves declarative physics descriptions into simulation setups.
package main

import (
	"fmt"
	"os"

	"github.com/lobis/restG4/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
