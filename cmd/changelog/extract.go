package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

var linkDefPattern = regexp.MustCompile(`(?m)^\[[^\]]+\]:\s+\S+\s*$`)

// stripLinkDefinitions drops link definition lines that the parser may
// have swept into an entry's content slice.
func stripLinkDefinitions(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if linkDefPattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// loadChangelog reads and parses the file named by the command's --file
// flag. Shared by the subcommands that work on the parsed form.
func loadChangelog(cmd *cobra.Command) (*Changelog, error) {
	file, _ := cmd.Flags().GetString("file")

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	changelog, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing changelog: %w", err)
	}
	return changelog, nil
}

// renderEntry formats one entry as a standalone markdown fragment, the
// shape GitHub release bodies expect.
func renderEntry(changelog *Changelog, entry *ChangelogEntry) string {
	var b strings.Builder

	b.WriteString("## [" + entry.Version + "]")
	if entry.Date != "" {
		b.WriteString(" - " + entry.Date)
	}
	b.WriteString("\n\n")
	b.WriteString(stripLinkDefinitions(entry.Content))

	if url, ok := changelog.Links[entry.Version]; ok {
		b.WriteString(fmt.Sprintf("\n\n[%s]: %s\n", entry.Version, url))
	}
	return b.String()
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a version's changelog entry",
	Long: `Extract the changelog content for a single version.

The release workflow pipes this into the GitHub release body when a
version tag is pushed.

Example:
  changelog extract --version v0.1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, _ := cmd.Flags().GetString("version")

		changelog, err := loadChangelog(cmd)
		if err != nil {
			return err
		}

		entry := changelog.FindVersion(version)
		if entry == nil {
			return fmt.Errorf("version %s not found in changelog", version)
		}

		fmt.Print(renderEntry(changelog, entry))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all versions in the changelog",
	Long:  `List all version entries found in the changelog, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		changelog, err := loadChangelog(cmd)
		if err != nil {
			return err
		}

		for _, entry := range changelog.Entries {
			if entry.Date != "" {
				fmt.Printf("%s (%s)\n", entry.Version, entry.Date)
				continue
			}
			fmt.Println(entry.Version)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	extractCmd.Flags().StringP("version", "v", "", "Version to extract (with or without 'v' prefix)")
	_ = extractCmd.MarkFlagRequired("version")

	listCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
}
