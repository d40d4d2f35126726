package analysis

import "strings"

// maxAchievements caps mining output; resumes rarely have more worth
// surfacing and coaching sessions only ever reference a handful.
const maxAchievements = 20

// Achievement is one accomplishment mined from free text.
type Achievement struct {
	Text       string `json:"text"`
	Verb       string `json:"verb"`
	Metric     string `json:"metric"`
	Quantified bool   `json:"quantified"`
}

// MineAchievements pulls accomplishment statements out of resume or
// conversation text. A candidate is any line or sentence containing an
// action verb; Quantified marks the ones that also carry a metric.
// Order follows the input, so callers can echo achievements back in the
// sequence the user wrote them.
func MineAchievements(text string) []Achievement {
	var out []Achievement
	for _, candidate := range splitCandidates(text) {
		verb := firstVerb(candidate)
		if verb == "" {
			continue
		}
		metric := metricPattern.FindString(candidate)
		out = append(out, Achievement{
			Text:       candidate,
			Verb:       verb,
			Metric:     strings.TrimSpace(metric),
			Quantified: metric != "",
		})
		if len(out) == maxAchievements {
			break
		}
	}
	return out
}

// HasMetric reports whether text carries any quantification signal,
// independent of achievement mining. "From 45 minutes to 8" counts even
// though no action verb appears near it.
func HasMetric(text string) bool {
	return metricPattern.MatchString(text)
}

// Quantified filters achievements down to the metric-bearing ones.
func Quantified(achievements []Achievement) []Achievement {
	var out []Achievement
	for _, a := range achievements {
		if a.Quantified {
			out = append(out, a)
		}
	}
	return out
}

// splitCandidates breaks text into lines, then breaks long prose lines
// into sentences, keeping only fragments with at least four words.
func splitCandidates(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = stripBullet(line)
		if line == "" {
			continue
		}
		for _, sentence := range splitSentences(line) {
			if len(strings.Fields(sentence)) >= 4 {
				out = append(out, sentence)
			}
		}
	}
	return out
}

func splitSentences(line string) []string {
	var out []string
	start := 0
	for i, r := range line {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// a period inside a number ("2.5x") is not a sentence break
		if r == '.' && i+1 < len(line) && line[i+1] != ' ' {
			continue
		}
		if s := strings.TrimSpace(line[start : i+1]); s != "" {
			out = append(out, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(line[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
