// Command hotelite is the hotel back-office shell.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/hotelite/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
