package main

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationError is a single validation issue, with the source line
// when one can be named.
type ValidationError struct {
	Line    int
	Message string
}

// ValidationResult collects every issue found in one pass.
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) AddError(line int, message string) {
	r.Errors = append(r.Errors, ValidationError{Line: line, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the changelog follows Keep a Changelog spec",
	Long: `Validate that the changelog follows the Keep a Changelog specification.

Runs on every pull request so a malformed entry is caught before it
reaches a release. Checks include:
- File has a title (# Changelog)
- Has an [Unreleased] section
- Version entries use correct format: ## [X.Y.Z] - YYYY-MM-DD
- Versions appear only once
- Dates are in ISO 8601 format (YYYY-MM-DD)
- Change types are valid (Added, Changed, Deprecated, Removed, Fixed, Security)
- Link definitions exist for all versions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		result := Validate(content)

		if result.IsValid() {
			fmt.Println("✓ Changelog is valid")
			return nil
		}

		fmt.Printf("Found %d issue(s):\n\n", len(result.Errors))
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Printf("  Line %d: %s\n", e.Line, e.Message)
			} else {
				fmt.Printf("  %s\n", e.Message)
			}
		}

		os.Exit(1)
		return nil
	},
}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	semverPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	changeTypes    = map[string]bool{
		"Added":      true,
		"Changed":    true,
		"Deprecated": true,
		"Removed":    true,
		"Fixed":      true,
		"Security":   true,
	}
)

// linter accumulates per-line findings plus the document-level facts
// (title seen, versions seen) the summary checks need.
type linter struct {
	result        *ValidationResult
	hasTitle      bool
	hasUnreleased bool
	seen          map[string]bool
}

// Validate checks a changelog against the Keep a Changelog spec.
func Validate(source []byte) *ValidationResult {
	l := &linter{
		result: &ValidationResult{},
		seen:   make(map[string]bool),
	}

	for i, line := range strings.Split(string(source), "\n") {
		l.checkLine(i+1, strings.TrimSpace(line))
	}
	l.checkDocument(source)

	return l.result
}

func (l *linter) checkLine(num int, line string) {
	switch {
	case strings.HasPrefix(line, "### "):
		l.checkChangeType(num, strings.TrimPrefix(line, "### "))
	case strings.HasPrefix(line, "## ["):
		l.checkVersionHeading(num, line)
	case strings.HasPrefix(line, "# "):
		l.hasTitle = true
		if !strings.Contains(strings.ToLower(line), "changelog") {
			l.result.AddError(num, "Title should contain 'Changelog'")
		}
	}
}

func (l *linter) checkVersionHeading(num int, line string) {
	end := strings.Index(line, "]")
	if end < 4 {
		return
	}
	version := line[4:end]

	if strings.EqualFold(version, "unreleased") {
		l.hasUnreleased = true
		return
	}

	if l.seen[version] {
		l.result.AddError(num, fmt.Sprintf("Duplicate entry for version '%s'", version))
	}
	l.seen[version] = true

	if !semverPattern.MatchString(version) {
		l.result.AddError(num, fmt.Sprintf("Version '%s' should follow semantic versioning (X.Y.Z)", version))
	}

	rest := line[end+1:]
	dash := strings.Index(rest, " - ")
	if dash == -1 {
		l.result.AddError(num, fmt.Sprintf("Version '%s' is missing a release date", version))
		return
	}
	if date := strings.TrimSpace(rest[dash+3:]); !isoDatePattern.MatchString(date) {
		l.result.AddError(num, fmt.Sprintf("Date '%s' should be in ISO 8601 format (YYYY-MM-DD)", date))
	}
}

func (l *linter) checkChangeType(num int, name string) {
	if !changeTypes[name] {
		l.result.AddError(num, fmt.Sprintf("Invalid change type '%s'. Valid types: Added, Changed, Deprecated, Removed, Fixed, Security", name))
	}
}

// checkDocument runs the whole-file checks once the line scan is done.
func (l *linter) checkDocument(source []byte) {
	if !l.hasTitle {
		l.result.AddError(0, "Missing changelog title (# Changelog)")
	}
	if !l.hasUnreleased {
		l.result.AddError(0, "Missing [Unreleased] section")
	}

	changelog, err := Parse(source)
	if err != nil {
		return
	}

	versions := make([]string, 0, len(l.seen))
	for v := range l.seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)

	for _, v := range versions {
		if _, ok := changelog.Links[v]; !ok {
			l.result.AddError(0, fmt.Sprintf("Missing link definition for version [%s]", v))
		}
	}
	if l.hasUnreleased {
		if _, ok := changelog.Links["Unreleased"]; !ok {
			l.result.AddError(0, "Missing link definition for [Unreleased]")
		}
	}
}

func init() {
	validateCmd.Flags().StringP("file", "f", "CHANGELOG.md", "Path to the changelog file")
	rootCmd.AddCommand(validateCmd)
}
