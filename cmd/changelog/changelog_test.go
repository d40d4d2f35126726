package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validChangelog = `# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]

### Added
- Job matching against saved postings

## [1.0.0] - 2026-01-15

### Added
- Resume upload and quality analysis
- Coaching conversations

### Fixed
- Template listing order

## [0.1.0] - 2026-01-01

### Added
- Beta release

[Unreleased]: https://github.com/rocketresume/rocket/compare/v1.0.0...HEAD
[1.0.0]: https://github.com/rocketresume/rocket/compare/v0.1.0...v1.0.0
[0.1.0]: https://github.com/rocketresume/rocket/releases/tag/v0.1.0
`

func TestParse(t *testing.T) {
	changelog, err := Parse([]byte(validChangelog))
	require.NoError(t, err)
	require.Len(t, changelog.Entries, 3)

	assert.Equal(t, "Unreleased", changelog.Entries[0].Version)
	assert.Empty(t, changelog.Entries[0].Date)

	assert.Equal(t, "1.0.0", changelog.Entries[1].Version)
	assert.Equal(t, "2026-01-15", changelog.Entries[1].Date)
	assert.Contains(t, changelog.Entries[1].Content, "Resume upload and quality analysis")

	assert.Len(t, changelog.Links, 3)
	assert.Equal(t, "https://github.com/rocketresume/rocket/compare/v0.1.0...v1.0.0", changelog.Links["1.0.0"])
}

func TestFindVersion(t *testing.T) {
	changelog, _ := Parse([]byte(validChangelog))

	tests := []struct {
		name     string
		version  string
		expected string
	}{
		{"exact version", "1.0.0", "1.0.0"},
		{"with v prefix", "v1.0.0", "1.0.0"},
		{"older version", "0.1.0", "0.1.0"},
		{"unreleased", "Unreleased", "Unreleased"},
		{"non-existent", "2.0.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := changelog.FindVersion(tt.version)
			if tt.expected == "" {
				assert.Nil(t, entry)
			} else {
				require.NotNil(t, entry)
				assert.Equal(t, tt.expected, entry.Version)
			}
		})
	}
}

func TestLatestRelease(t *testing.T) {
	changelog, _ := Parse([]byte(validChangelog))

	latest := changelog.LatestRelease()
	require.NotNil(t, latest)
	assert.Equal(t, "1.0.0", latest.Version)
}

func TestValidate_Valid(t *testing.T) {
	result := Validate([]byte(validChangelog))
	assert.True(t, result.IsValid(), "Expected valid changelog, got errors: %v", result.Errors)
}

func TestValidate_MissingTitle(t *testing.T) {
	changelog := `## [Unreleased]

## [1.0.0] - 2026-01-15

### Added
- Something

[Unreleased]: https://example.com
[1.0.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Missing changelog title (# Changelog)"))
}

func TestValidate_MissingUnreleased(t *testing.T) {
	changelog := `# Changelog

## [1.0.0] - 2026-01-15

### Added
- Something

[1.0.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Missing [Unreleased] section"))
}

func TestValidate_InvalidDate(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [1.0.0] - 15-01-2026

### Added
- Something

[Unreleased]: https://example.com
[1.0.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "ISO 8601"))
}

func TestValidate_InvalidChangeType(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

### New
- Something

[Unreleased]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Invalid change type"))
}

func TestValidate_DuplicateVersion(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [1.0.0] - 2026-01-15

### Added
- Something

## [1.0.0] - 2026-01-10

### Fixed
- Something else

[Unreleased]: https://example.com
[1.0.0]: https://example.com
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Duplicate entry for version '1.0.0'"))
}

func TestValidate_MissingLinkDefinition(t *testing.T) {
	changelog := `# Changelog

## [Unreleased]

## [1.0.0] - 2026-01-15

### Added
- Something
`
	result := Validate([]byte(changelog))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Missing link definition for [Unreleased]"))
	assert.True(t, hasErrorContaining(result, "Missing link definition for version [1.0.0]"))
}

func TestRelease(t *testing.T) {
	updated, err := Release([]byte(validChangelog), "v1.1.0", "2026-08-25")
	require.NoError(t, err)

	result := Validate(updated)
	assert.True(t, result.IsValid(), "Expected released changelog to stay valid, got errors: %v", result.Errors)

	changelog, err := Parse(updated)
	require.NoError(t, err)
	require.Len(t, changelog.Entries, 4)

	// Pending entries move under the new version and [Unreleased] empties out.
	unreleased := changelog.FindVersion("Unreleased")
	require.NotNil(t, unreleased)
	assert.Empty(t, stripLinkDefinitions(unreleased.Content))

	released := changelog.FindVersion("1.1.0")
	require.NotNil(t, released)
	assert.Equal(t, "2026-08-25", released.Date)
	assert.Contains(t, released.Content, "Job matching against saved postings")

	assert.Equal(t, "https://github.com/rocketresume/rocket/compare/v1.1.0...HEAD", changelog.Links["Unreleased"])
	assert.Equal(t, "https://github.com/rocketresume/rocket/compare/v1.0.0...v1.1.0", changelog.Links["1.1.0"])
}

func TestRelease_Errors(t *testing.T) {
	t.Run("existing version", func(t *testing.T) {
		_, err := Release([]byte(validChangelog), "1.0.0", "2026-08-25")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("invalid version", func(t *testing.T) {
		_, err := Release([]byte(validChangelog), "next", "2026-08-25")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "semantic versioning")
	})

	t.Run("empty unreleased section", func(t *testing.T) {
		changelog := `# Changelog

## [Unreleased]

## [1.0.0] - 2026-01-15

### Added
- Something

[Unreleased]: https://github.com/rocketresume/rocket/compare/v1.0.0...HEAD
[1.0.0]: https://github.com/rocketresume/rocket/releases/tag/v1.0.0
`
		_, err := Release([]byte(changelog), "1.1.0", "2026-08-25")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nothing to release")
	})
}

func hasError(result *ValidationResult, message string) bool {
	for _, e := range result.Errors {
		if e.Message == message {
			return true
		}
	}
	return false
}

func hasErrorContaining(result *ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
