package main

import (
	"os"

	"github.com/figlift/figlift/internal/cli"
)

// The kiwi decoder is linked in here: add a blank import of a package that
// calls kiwi.Register from init. Builds without one can still inspect
// containers; convert/validate/index/watch will report the missing decoder.

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
