package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Release-notes tooling for the Rocket repository",
	Long: `Release-notes tooling for the Rocket repository.

Parses, validates, and rewrites Keep a Changelog formatted markdown.
The release workflow uses it to check CHANGELOG.md on every pull
request, to extract the notes for a tagged version, and to cut a new
release section from the accumulated [Unreleased] entries.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
