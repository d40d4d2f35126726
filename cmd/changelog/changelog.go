package main

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ChangelogEntry is a single version section of the changelog.
type ChangelogEntry struct {
	Version string
	Date    string
	Content string
}

// Changelog is a parsed Keep a Changelog file.
type Changelog struct {
	Entries []ChangelogEntry
	Links   map[string]string
}

// FindVersion looks up an entry by version, with or without a 'v' prefix.
func (c *Changelog) FindVersion(version string) *ChangelogEntry {
	version = strings.TrimPrefix(version, "v")

	for i := range c.Entries {
		entryVersion := strings.TrimPrefix(c.Entries[i].Version, "v")
		if entryVersion == version {
			return &c.Entries[i]
		}
	}
	return nil
}

// LatestRelease returns the most recent released version, skipping the
// Unreleased section. Entries are in document order, newest first.
func (c *Changelog) LatestRelease() *ChangelogEntry {
	for i := range c.Entries {
		if !strings.EqualFold(c.Entries[i].Version, "Unreleased") {
			return &c.Entries[i]
		}
	}
	return nil
}

// headingInfo records where an h2 version heading sits in the source so
// entry content can be sliced out between consecutive headings.
type headingInfo struct {
	version      string
	date         string
	contentStart int
	headingStart int
}

// Parse parses a Keep a Changelog formatted markdown file.
func Parse(source []byte) (*Changelog, error) {
	md := goldmark.New()
	reader := text.NewReader(source)
	ctx := parser.NewContext()
	doc := md.Parser().Parse(reader, parser.WithContext(ctx))

	changelog := &Changelog{
		Links: make(map[string]string),
	}

	// Link definitions land in the parser context, not the AST.
	for _, ref := range ctx.References() {
		changelog.Links[string(ref.Label())] = string(ref.Destination())
	}

	headings := collectHeadings(doc, source)

	// Each entry's content runs from the end of its heading to the start
	// of the next one.
	for i, h := range headings {
		contentEnd := len(source)
		if i+1 < len(headings) {
			contentEnd = headings[i+1].headingStart
		}

		content := ""
		if h.contentStart < contentEnd {
			content = strings.TrimSpace(string(source[h.contentStart:contentEnd]))
		}

		changelog.Entries = append(changelog.Entries, ChangelogEntry{
			Version: h.version,
			Date:    h.date,
			Content: content,
		})
	}

	return changelog, nil
}

func collectHeadings(doc ast.Node, source []byte) []headingInfo {
	var headings []headingInfo

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}

		version, date := parseVersionHeading(extractHeadingText(heading, source))

		lines := heading.Lines()
		headingStart := 0
		contentStart := 0
		if lines.Len() > 0 {
			headingStart = lines.At(0).Start
			contentStart = lines.At(lines.Len() - 1).Stop
		}

		headings = append(headings, headingInfo{
			version:      version,
			date:         date,
			contentStart: contentStart,
			headingStart: headingStart,
		})

		return ast.WalkContinue, nil
	})

	return headings
}

func extractHeadingText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			buf.Write(typed.Segment.Value(source))
		case *ast.Link:
			for linkChild := typed.FirstChild(); linkChild != nil; linkChild = linkChild.NextSibling() {
				if textNode, ok := linkChild.(*ast.Text); ok {
					buf.Write(textNode.Segment.Value(source))
				}
			}
		}
	}
	return buf.String()
}

// parseVersionHeading splits "## [1.2.3] - 2026-01-15" style headings
// into version and date, tolerating the bracket-less form.
func parseVersionHeading(heading string) (version, date string) {
	heading = strings.TrimSpace(heading)

	heading = strings.TrimPrefix(heading, "[")
	if idx := strings.Index(heading, "]"); idx != -1 {
		version = heading[:idx]
		rest := strings.TrimSpace(heading[idx+1:])
		if strings.HasPrefix(rest, "- ") {
			date = strings.TrimSpace(rest[2:])
		}
	} else if idx := strings.Index(heading, " - "); idx != -1 {
		version = strings.TrimSpace(heading[:idx])
		date = strings.TrimSpace(heading[idx+3:])
	} else {
		version = heading
	}

	return version, date
}
