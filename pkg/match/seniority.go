package match

import (
	"regexp"
	"strconv"
	"strings"
)

// Seniority levels, ordered. Zero means "unknown".
const (
	levelUnknown = iota
	levelJunior
	levelMid
	levelSenior
	levelLead
	levelExecutive
)

var levelNames = map[int]string{
	levelUnknown:   "unknown",
	levelJunior:    "junior",
	levelMid:       "mid",
	levelSenior:    "senior",
	levelLead:      "lead",
	levelExecutive: "executive",
}

var yearsPattern = regexp.MustCompile(`(\d{1,2})\+?\s*(?:years|yrs)`)

// seniorityFromLabel maps a posting's seniority field to a level.
func seniorityFromLabel(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "intern", "internship", "entry", "entry-level", "junior", "graduate":
		return levelJunior
	case "mid", "mid-level", "intermediate", "associate":
		return levelMid
	case "senior", "sr":
		return levelSenior
	case "lead", "staff", "principal", "architect":
		return levelLead
	case "executive", "director", "vp", "head", "cto", "chief":
		return levelExecutive
	default:
		return levelUnknown
	}
}

// estimateSeniority guesses a resume's level from title keywords and
// years-of-experience mentions. Title keywords win over year counts
// because they are asserted rather than inferred.
func estimateSeniority(lower string) int {
	switch {
	case containsTerm(lower, "cto") || containsTerm(lower, "vp") ||
		containsAny(lower, "chief ", "vice president", "director of"):
		return levelExecutive
	case containsAny(lower, "principal", "staff engineer", "tech lead", "team lead", "engineering manager"):
		return levelLead
	case strings.Contains(lower, "senior"):
		return levelSenior
	case containsAny(lower, "intern", "junior", "graduate"):
		return levelJunior
	}

	years := maxYears(lower)
	switch {
	case years >= 12:
		return levelLead
	case years >= 6:
		return levelSenior
	case years >= 3:
		return levelMid
	case years >= 1:
		return levelJunior
	default:
		return levelUnknown
	}
}

// maxYears returns the largest "N years" mention in the text.
func maxYears(lower string) int {
	max := 0
	for _, m := range yearsPattern.FindAllStringSubmatch(lower, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

// alignmentScore rates how well the resume's level fits the posting's.
// Unknown on either side is neutral rather than punitive.
func alignmentScore(resumeLevel, jobLevel int) int {
	if resumeLevel == levelUnknown || jobLevel == levelUnknown {
		return 75
	}
	diff := resumeLevel - jobLevel
	if diff < 0 {
		diff = -diff
	}
	score := 100 - 25*diff
	if score < 0 {
		score = 0
	}
	return score
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
