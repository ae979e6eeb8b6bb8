// Command scorecheck checks set and match scores against the sport rules.
package main

import (
	"fmt"
	"os"

	"github.com/fjvbn2003/fingerscore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scorecheck:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
