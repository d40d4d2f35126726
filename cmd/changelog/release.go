package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Cut a new release section from the [Unreleased] entries",
	Long: `Cut a new release section from the accumulated [Unreleased] entries.

Inserts a dated version heading directly under [Unreleased], leaving a
fresh empty [Unreleased] section above it, and rewrites the link
definitions so the compare URLs stay correct.

Example:
  changelog release --version 0.2.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		version, _ := cmd.Flags().GetString("version")
		date, _ := cmd.Flags().GetString("date")

		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		updated, err := Release(content, version, date)
		if err != nil {
			return err
		}

		if err := os.WriteFile(file, updated, 0o644); err != nil {
			return fmt.Errorf("writing file: %w", err)
		}

		fmt.Printf("Released %s (%s)\n", strings.TrimPrefix(version, "v"), date)
		return nil
	},
}

// Release promotes the [Unreleased] section to a dated version entry
// and returns the rewritten changelog.
func Release(source []byte, version, date string) ([]byte, error) {
	version = strings.TrimPrefix(version, "v")
	if !semverPattern.MatchString(version) {
		return nil, fmt.Errorf("version '%s' should follow semantic versioning (X.Y.Z)", version)
	}

	changelog, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing changelog: %w", err)
	}

	if changelog.FindVersion(version) != nil {
		return nil, fmt.Errorf("version %s already exists in the changelog", version)
	}

	unreleased := changelog.FindVersion("Unreleased")
	if unreleased == nil {
		return nil, fmt.Errorf("no [Unreleased] section to release")
	}
	if stripLinkDefinitions(unreleased.Content) == "" {
		return nil, fmt.Errorf("the [Unreleased] section is empty, nothing to release")
	}

	base := repoBaseURL(changelog.Links)
	if base == "" {
		return nil, fmt.Errorf("cannot derive the repository URL from the link definitions")
	}

	versionLink := fmt.Sprintf("[%s]: %s/releases/tag/v%s", version, base, version)
	if prev := changelog.LatestRelease(); prev != nil {
		versionLink = fmt.Sprintf("[%s]: %s/compare/v%s...v%s", version, base, prev.Version, version)
	}
	unreleasedLink := fmt.Sprintf("[Unreleased]: %s/compare/v%s...HEAD", base, version)

	lines := strings.Split(string(source), "\n")
	out := make([]string, 0, len(lines)+4)
	inserted := false
	linkReplaced := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// The new heading goes right below [Unreleased], so the pending
		// entries fall under it and [Unreleased] is left empty.
		if !inserted && strings.HasPrefix(trimmed, "## [Unreleased]") {
			out = append(out, line, "", fmt.Sprintf("## [%s] - %s", version, date))
			inserted = true
			continue
		}

		if strings.HasPrefix(trimmed, "[Unreleased]:") {
			out = append(out, unreleasedLink, versionLink)
			linkReplaced = true
			continue
		}

		out = append(out, line)
	}

	if !linkReplaced {
		out = append(out, unreleasedLink, versionLink)
	}

	return []byte(strings.Join(out, "\n")), nil
}

// repoBaseURL recovers the repository URL from any compare or tag link.
func repoBaseURL(links map[string]string) string {
	for _, url := range links {
		if idx := strings.Index(url, "/compare/"); idx != -1 {
			return url[:idx]
		}
		if idx := strings.Index(url, "/releases/tag/"); idx != -1 {
			return url[:idx]
		}
	}
	return ""
}

func init() {
	releaseCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	releaseCmd.Flags().StringP("version", "v", "", "Version to release (with or without 'v' prefix)")
	releaseCmd.Flags().StringP("date", "d", "", "Release date (default: today, ISO 8601)")
	_ = releaseCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(releaseCmd)
}
