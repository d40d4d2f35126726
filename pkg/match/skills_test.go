package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	text := `Senior engineer. Built services in Golang and Python,
deployed to k8s with Docker. Comfortable with PostgreSQL and REST APIs.`

	got := ExtractSkills(text)
	assert.Equal(t, []string{"go", "python", "postgresql", "rest api", "docker", "kubernetes"}, got)
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	// "go" must not fire inside "google" or "category"
	assert.Empty(t, ExtractSkills("worked at Google on categorization"))

	// punctuation-delimited mentions still count
	assert.Equal(t, []string{"go"}, ExtractSkills("shipped services (Go)."))
	assert.Equal(t, []string{"c++"}, ExtractSkills("ten years of C++ development"))
	assert.Equal(t, []string{"c#"}, ExtractSkills("maintained a .NET platform"))
}

func TestExtractSkillsDeduplicates(t *testing.T) {
	got := ExtractSkills("Go, golang, GOLANG and more Go")
	assert.Equal(t, []string{"go"}, got)
}

func TestContainsTerm(t *testing.T) {
	cases := []struct {
		text, term string
		want       bool
	}{
		{"plain go here", "go", true},
		{"google", "go", false},
		{"lets go", "go", true},
		{"go", "go", true},
		{"cargo", "go", false},
		{"node.js apps", "node.js", true},
		{"ci/cd pipelines", "ci/cd", true},
		{"", "go", false},
		{"anything", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, containsTerm(tc.text, tc.term), "text=%q term=%q", tc.text, tc.term)
	}
}

func TestRelatedSkill(t *testing.T) {
	have := map[string]bool{"mysql": true, "docker": true}

	assert.Equal(t, "mysql", relatedSkill("postgresql", have))
	assert.Equal(t, "docker", relatedSkill("kubernetes", have))
	assert.Equal(t, "", relatedSkill("terraform", have))
	assert.Equal(t, "", relatedSkill("agile", have), "groupless skills earn no partial credit")
	assert.Equal(t, "", relatedSkill("not-in-catalog", have))
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "go", canonicalize("Golang"))
	assert.Equal(t, "kubernetes", canonicalize(" K8S "))
	assert.Equal(t, "cobol", canonicalize("COBOL"), "unknown skills pass through lowercased")
}
