package analysis

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// EngineName identifies the scoring engine in stored analysis rows.
const EngineName = "quality-v1"

// Component names, in report order.
const (
	ComponentSections       = "sections"
	ComponentActionVerbs    = "action_verbs"
	ComponentQuantification = "quantification"
	ComponentLength         = "length"
	ComponentReadability    = "readability"
)

var componentWeights = map[string]float64{
	ComponentSections:       0.25,
	ComponentActionVerbs:    0.25,
	ComponentQuantification: 0.20,
	ComponentLength:         0.15,
	ComponentReadability:    0.15,
}

// ComponentScore is one scored dimension of a resume.
type ComponentScore struct {
	Name   string  `json:"name"`
	Score  int     `json:"score"`
	Weight float64 `json:"weight"`
	Detail string  `json:"detail"`
}

// Report is the full quality verdict for one resume.
type Report struct {
	OverallScore int              `json:"overall_score"`
	Components   []ComponentScore `json:"components"`
	Suggestions  []string         `json:"suggestions"`
	WordCount    int              `json:"word_count"`
	Engine       string           `json:"engine"`
}

// metricPattern matches the quantification signals resumes carry:
// percentages, dollar amounts, multipliers, and large counts.
var metricPattern = regexp.MustCompile(
	`\d+(?:\.\d+)?\s*%` +
		`|\$\s?\d[\d,]*(?:\.\d+)?\s*(?:[kKmMbB]\b|million\b|billion\b)?` +
		`|\b\d+(?:\.\d+)?x\b` +
		`|\b\d{1,3}(?:,\d{3})+\b` +
		`|\b\d+\+?\s+(?:users|customers|clients|engineers|people|employees|teams|reports|requests|deployments|releases|services|servers|projects|tickets|countries|markets|stores|accounts|hours|days|weeks|months|years)\b`,
)

// buzzwords drag the readability score down. Matching is a lowercase
// substring scan, so plural and hyphen-free variants still count.
var buzzwords = []string{
	"team player",
	"hard worker",
	"go-getter",
	"self-starter",
	"results-driven",
	"results oriented",
	"detail-oriented",
	"think outside the box",
	"synergy",
	"go above and beyond",
	"dynamic individual",
	"proven track record",
	"passionate about",
	"responsible for",
}

var sectionSignals = map[string][]string{
	"contact":    {"@", "phone", "linkedin", "github.com"},
	"summary":    {"summary", "objective", "profile", "about me"},
	"experience": {"experience", "employment", "work history", "career history"},
	"education":  {"education", "degree", "university", "college", "bachelor", "master"},
	"skills":     {"skills", "technologies", "competencies", "tools"},
}

var sectionOrder = []string{"contact", "summary", "experience", "education", "skills"}

// AnalyzeQuality scores resume text across five components and returns
// the weighted overall score with suggestions for the weakest ones.
func AnalyzeQuality(text string) *Report {
	lower := strings.ToLower(text)
	lines := contentLines(text)
	words := WordCount(text)

	components := []ComponentScore{
		scoreSections(lower),
		scoreActionVerbs(lines),
		scoreQuantification(lines),
		scoreLength(words),
		scoreReadability(lower, words),
	}

	var overall float64
	for i := range components {
		components[i].Weight = componentWeights[components[i].Name]
		overall += float64(components[i].Score) * components[i].Weight
	}

	return &Report{
		OverallScore: int(math.Round(overall)),
		Components:   components,
		Suggestions:  suggestions(components),
		WordCount:    words,
		Engine:       EngineName,
	}
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// contentLines returns the lines worth scoring: at least four words
// after bullet markers are stripped. Headings and blank lines fall out.
func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = stripBullet(line)
		if len(strings.Fields(line)) >= 4 {
			out = append(out, line)
		}
	}
	return out
}

func scoreSections(lower string) ComponentScore {
	var missing []string
	found := 0
	for _, name := range sectionOrder {
		hit := false
		for _, signal := range sectionSignals[name] {
			if strings.Contains(lower, signal) {
				hit = true
				break
			}
		}
		if hit {
			found++
		} else {
			missing = append(missing, name)
		}
	}

	detail := "all five core sections present"
	if len(missing) > 0 {
		detail = "missing: " + strings.Join(missing, ", ")
	}
	return ComponentScore{
		Name:   ComponentSections,
		Score:  found * 100 / len(sectionOrder),
		Detail: detail,
	}
}

func scoreActionVerbs(lines []string) ComponentScore {
	if len(lines) == 0 {
		return ComponentScore{Name: ComponentActionVerbs, Score: 0, Detail: "no content lines found"}
	}
	hits := 0
	for _, line := range lines {
		if leadingVerb(line) != "" {
			hits++
		}
	}
	// 60% of lines opening with an action verb earns full marks.
	ratio := float64(hits) / float64(len(lines))
	return ComponentScore{
		Name:   ComponentActionVerbs,
		Score:  ratioScore(ratio, 0.6),
		Detail: fmt.Sprintf("%d of %d lines open with an action verb", hits, len(lines)),
	}
}

func scoreQuantification(lines []string) ComponentScore {
	if len(lines) == 0 {
		return ComponentScore{Name: ComponentQuantification, Score: 0, Detail: "no content lines found"}
	}
	hits := 0
	for _, line := range lines {
		if metricPattern.MatchString(line) {
			hits++
		}
	}
	// 40% of lines carrying a metric earns full marks.
	ratio := float64(hits) / float64(len(lines))
	return ComponentScore{
		Name:   ComponentQuantification,
		Score:  ratioScore(ratio, 0.4),
		Detail: fmt.Sprintf("%d of %d lines carry a metric", hits, len(lines)),
	}
}

func scoreLength(words int) ComponentScore {
	var score int
	switch {
	case words == 0:
		score = 0
	case words < 150:
		score = 35
	case words < 300:
		score = 70
	case words <= 700:
		score = 100
	case words <= 1000:
		score = 85
	case words <= 1400:
		score = 65
	default:
		score = 50
	}
	return ComponentScore{
		Name:   ComponentLength,
		Score:  score,
		Detail: fmt.Sprintf("%d words", words),
	}
}

func scoreReadability(lower string, words int) ComponentScore {
	if words == 0 {
		return ComponentScore{Name: ComponentReadability, Score: 0, Detail: "empty document"}
	}
	var found []string
	hits := 0
	for _, phrase := range buzzwords {
		if n := strings.Count(lower, phrase); n > 0 {
			hits += n
			found = append(found, phrase)
		}
	}
	score := 100 - 12*hits
	if score < 0 {
		score = 0
	}
	detail := "no filler phrases found"
	if hits > 0 {
		detail = "filler phrases: " + strings.Join(found, ", ")
	}
	return ComponentScore{Name: ComponentReadability, Score: score, Detail: detail}
}

// ratioScore maps ratio/target linearly onto 0..100, saturating at 100.
func ratioScore(ratio, target float64) int {
	score := int(math.Round(ratio / target * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// suggestionText maps each component to advice for improving it.
var suggestionText = map[string]string{
	ComponentSections:       "Add the standard sections recruiters scan for: contact details, a summary, experience, education and skills.",
	ComponentActionVerbs:    "Open more bullets with a strong verb such as \"led\", \"built\" or \"reduced\" instead of describing duties.",
	ComponentQuantification: "Attach numbers to your achievements: percentages, dollar amounts, time saved or people affected.",
	ComponentLength:         "Aim for 300 to 700 words; one tight page beats three thin ones.",
	ComponentReadability:    "Cut filler phrases and describe what you actually did in plain words.",
}

// suggestions returns advice for the weakest components, lowest score
// first, capped at three. Components at 70 or above need no advice.
func suggestions(components []ComponentScore) []string {
	weak := make([]ComponentScore, 0, len(components))
	for _, c := range components {
		if c.Score < 70 {
			weak = append(weak, c)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })
	if len(weak) > 3 {
		weak = weak[:3]
	}

	out := make([]string, 0, len(weak))
	for _, c := range weak {
		out = append(out, suggestionText[c.Name])
	}
	return out
}
