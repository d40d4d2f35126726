package match

import "strings"

// skillDef is one dictionary entry. Skills sharing a non-empty Group
// are considered related: a missing skill earns partial credit when the
// resume carries another skill from the same group.
type skillDef struct {
	Canonical string
	Aliases   []string
	Group     string
}

// skillCatalog is the fixed dictionary the extractor works from.
// Catalog order is output order, which keeps results deterministic.
var skillCatalog = []skillDef{
	{Canonical: "go", Aliases: []string{"golang"}, Group: "backend"},
	{Canonical: "python", Group: "backend"},
	{Canonical: "java", Group: "backend"},
	{Canonical: "ruby", Aliases: []string{"rails", "ruby on rails"}, Group: "backend"},
	{Canonical: "php", Group: "backend"},
	{Canonical: "rust", Group: "backend"},
	{Canonical: "c++", Aliases: []string{"cpp"}, Group: "systems"},
	{Canonical: "c#", Aliases: []string{".net", "dotnet"}, Group: "backend"},
	{Canonical: "kotlin", Group: "mobile"},
	{Canonical: "swift", Group: "mobile"},
	{Canonical: "javascript", Aliases: []string{"js", "ecmascript"}, Group: "frontend"},
	{Canonical: "typescript", Aliases: []string{"ts"}, Group: "frontend"},
	{Canonical: "react", Aliases: []string{"reactjs", "react.js"}, Group: "frontend"},
	{Canonical: "vue", Aliases: []string{"vuejs", "vue.js"}, Group: "frontend"},
	{Canonical: "angular", Group: "frontend"},
	{Canonical: "node", Aliases: []string{"nodejs", "node.js"}, Group: "backend"},
	{Canonical: "html", Group: "frontend"},
	{Canonical: "css", Group: "frontend"},
	{Canonical: "sql", Group: "database"},
	{Canonical: "postgresql", Aliases: []string{"postgres"}, Group: "database"},
	{Canonical: "mysql", Group: "database"},
	{Canonical: "sqlite", Group: "database"},
	{Canonical: "mongodb", Aliases: []string{"mongo"}, Group: "database"},
	{Canonical: "redis", Group: "caching"},
	{Canonical: "elasticsearch", Group: "database"},
	{Canonical: "kafka", Group: "messaging"},
	{Canonical: "rabbitmq", Aliases: []string{"amqp"}, Group: "messaging"},
	{Canonical: "grpc", Group: "api"},
	{Canonical: "rest api", Aliases: []string{"restful", "rest apis"}, Group: "api"},
	{Canonical: "graphql", Group: "api"},
	{Canonical: "docker", Group: "containers"},
	{Canonical: "kubernetes", Aliases: []string{"k8s"}, Group: "containers"},
	{Canonical: "terraform", Group: "infrastructure"},
	{Canonical: "ansible", Group: "infrastructure"},
	{Canonical: "aws", Aliases: []string{"amazon web services"}, Group: "cloud"},
	{Canonical: "gcp", Aliases: []string{"google cloud"}, Group: "cloud"},
	{Canonical: "azure", Group: "cloud"},
	{Canonical: "linux", Group: "systems"},
	{Canonical: "git", Group: "tooling"},
	{Canonical: "ci/cd", Aliases: []string{"continuous integration", "continuous delivery", "jenkins", "github actions"}, Group: "tooling"},
	{Canonical: "machine learning", Aliases: []string{"ml"}, Group: "data"},
	{Canonical: "data analysis", Aliases: []string{"analytics", "data analytics"}, Group: "data"},
	{Canonical: "pandas", Group: "data"},
	{Canonical: "spark", Group: "data"},
	{Canonical: "agile", Aliases: []string{"scrum", "kanban"}},
	{Canonical: "project management", Aliases: []string{"program management"}},
	{Canonical: "leadership", Aliases: []string{"people management", "team lead"}},
	{Canonical: "communication", Aliases: []string{"stakeholder management"}},
}

var skillIndex = buildSkillIndex()

func buildSkillIndex() map[string]*skillDef {
	idx := make(map[string]*skillDef, len(skillCatalog)*2)
	for i := range skillCatalog {
		def := &skillCatalog[i]
		idx[def.Canonical] = def
		for _, a := range def.Aliases {
			idx[a] = def
		}
	}
	return idx
}

// ExtractSkills returns the canonical skills found in text, in catalog
// order, each at most once.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, def := range skillCatalog {
		if skillPresent(lower, def) {
			out = append(out, def.Canonical)
		}
	}
	return out
}

func skillPresent(lower string, def skillDef) bool {
	if containsTerm(lower, def.Canonical) {
		return true
	}
	for _, a := range def.Aliases {
		if containsTerm(lower, a) {
			return true
		}
	}
	return false
}

// containsTerm reports whether term occurs in lower delimited by
// non-alphanumeric characters. A plain substring check would claim "go"
// inside "google"; a \b regexp cannot handle terms like "c++" or
// ".net". Scanning with explicit boundary checks handles both.
func containsTerm(lower, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start+len(term) <= len(lower); {
		i := strings.Index(lower[start:], term)
		if i < 0 {
			return false
		}
		i += start
		boundedLeft := i == 0 || !isAlnum(lower[i-1])
		end := i + len(term)
		boundedRight := end == len(lower) || !isAlnum(lower[end])
		if boundedLeft && boundedRight {
			return true
		}
		start = i + 1
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// relatedSkill returns a skill from the same group as canonical that is
// present in the have set, or "" when none qualifies.
func relatedSkill(canonical string, have map[string]bool) string {
	def, ok := skillIndex[canonical]
	if !ok || def.Group == "" {
		return ""
	}
	for _, other := range skillCatalog {
		if other.Canonical == canonical || other.Group != def.Group {
			continue
		}
		if have[other.Canonical] {
			return other.Canonical
		}
	}
	return ""
}

// canonicalize maps a free-form skill name (e.g. from a posting's
// skills list) to its catalog entry, or returns the lowercased input
// when the catalog does not know it.
func canonicalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if def, ok := skillIndex[n]; ok {
		return def.Canonical
	}
	return n
}
