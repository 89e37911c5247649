package main

import (
	"os"

	"ghaudit/internal/cli"
	_ "ghaudit/internal/rules/checks"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	os.Exit(cli.Execute())
}
