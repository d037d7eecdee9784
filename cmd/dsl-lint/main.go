package main

import (
	"os"

	"github.com/omt-lang/dsl-lint/internal/cli/commands"
)

// Build-time version metadata, injected via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
	goVersion = "unknown"
)

func main() {
	commands.Version = version
	commands.GitCommit = gitCommit
	commands.BuildDate = buildDate
	commands.GoVersion = goVersion

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
