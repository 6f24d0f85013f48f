// clientmock CLI - validate and dry-run HTTP client mock fixtures
package main

import (
	"os"

	"github.com/getmockd/clientmock/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if Version != "dev" {
		cli.Version = Version
	}
	if Commit != "unknown" {
		cli.Commit = Commit
	}
	if BuildDate != "unknown" {
		cli.BuildDate = BuildDate
	}
	os.Exit(cli.Main())
}
