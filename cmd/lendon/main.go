// Command lendon localizes Chinese product text into Vietnamese marketplace content.
package main

import (
	"fmt"
	"os"

	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/cmd/lendon/commands"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = lendon.Version
	commit    = lendon.GitCommit
	buildDate = lendon.BuildDate
)

func main() {
	commands.SetVersion(version, commit, buildDate)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
