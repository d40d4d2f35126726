package analysis

import "strings"

// actionVerbs are past-tense verbs that open strong resume bullets.
// Lookup is case-insensitive on the first word of a line or sentence.
var actionVerbs = map[string]bool{
	"accelerated":  true,
	"achieved":     true,
	"architected":  true,
	"automated":    true,
	"built":        true,
	"consolidated": true,
	"coordinated":  true,
	"created":      true,
	"cut":          true,
	"delivered":    true,
	"designed":     true,
	"developed":    true,
	"directed":     true,
	"doubled":      true,
	"drove":        true,
	"eliminated":   true,
	"established":  true,
	"expanded":     true,
	"founded":      true,
	"grew":         true,
	"implemented":  true,
	"improved":     true,
	"increased":    true,
	"launched":     true,
	"led":          true,
	"managed":      true,
	"mentored":     true,
	"migrated":     true,
	"negotiated":   true,
	"optimized":    true,
	"organized":    true,
	"overhauled":   true,
	"owned":        true,
	"partnered":    true,
	"rebuilt":      true,
	"redesigned":   true,
	"reduced":      true,
	"resolved":     true,
	"saved":        true,
	"scaled":       true,
	"shipped":      true,
	"spearheaded":  true,
	"streamlined":  true,
	"tripled":      true,
	"won":          true,
}

// leadingVerb returns the action verb a line opens with, after bullet
// markers are stripped, or "" when the line opens with something else.
func leadingVerb(line string) string {
	word := firstWord(line)
	if actionVerbs[word] {
		return word
	}
	return ""
}

// firstVerb returns the first action verb appearing anywhere in the
// line, preferring the leading word.
func firstVerb(line string) string {
	if v := leadingVerb(line); v != "" {
		return v
	}
	for _, w := range strings.Fields(stripBullet(line)) {
		if w := normalizeWord(w); actionVerbs[w] {
			return w
		}
	}
	return ""
}

func firstWord(line string) string {
	fields := strings.Fields(stripBullet(line))
	if len(fields) == 0 {
		return ""
	}
	return normalizeWord(fields[0])
}

func stripBullet(line string) string {
	return strings.TrimLeft(strings.TrimSpace(line), "-*•·◦> \t")
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.Trim(w, ".,:;()[]\"'"))
}
