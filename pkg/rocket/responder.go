package rocket

import (
	"fmt"
	"strings"

	"github.com/rocketresume/rocket/pkg/analysis"
	"github.com/rocketresume/rocket/pkg/persona"
)

// phasePrompts are the question templates for each collecting phase.
// Intro draws on the persona's own opening questions instead.
var phasePrompts = map[Phase][]string{
	PhaseStoryDiscovery: {
		"Tell me about one project from the last couple of years you'd want a hiring manager to ask about. What was the situation, and what did you do?",
		"Pick a time you fixed something everyone else had learned to live with. How did you notice it, and what did you change?",
		"And what happened afterwards? Who noticed your work, and what changed because of it?",
	},
	PhaseAchievementMining: {
		"Let's pull the achievements out of that. What was the single biggest outcome of your work there?",
		"Which verbs describe what you actually did: led, built, migrated, negotiated, something else? Give me the actions.",
		"What else came out of that work that you haven't mentioned yet, even if it feels small?",
	},
	PhaseQuantification: {
		"Now let's attach numbers. How many people, dollars, hours or percent did that affect?",
		"If you had to estimate the before and the after, what would the two numbers be?",
		"How often did that happen, and how long did it take before your change?",
	},
}

// promptReply assembles the deterministic coach reply for a collecting
// phase: an acknowledgment of anything just mined, then the next
// question template, rotated by how far into the phase we are.
func promptReply(p persona.Persona, st State, mined []analysis.Achievement) string {
	ack := acknowledge(mined)

	var questions []string
	if st.Phase == PhaseIntro {
		questions = p.OpeningQuestions
	} else {
		questions = phasePrompts[st.Phase]
	}
	if len(questions) == 0 {
		return ack + "Tell me more."
	}
	return ack + questions[st.PhaseExchanges%len(questions)]
}

func acknowledge(mined []analysis.Achievement) string {
	if len(mined) == 0 {
		return ""
	}
	if q := analysis.Quantified(mined); len(q) > 0 {
		return fmt.Sprintf("%q is the kind of line that belongs on a resume; %s makes it concrete. ",
			shorten(q[0].Text, 80), q[0].Metric)
	}
	return fmt.Sprintf("There's a real achievement in %q. ", shorten(mined[0].Text, 80))
}

// synthesisReply wraps the session up with the strongest collected
// lines, quantified ones first.
func synthesisReply(st State) string {
	lines := pickStrongest(st.Collected, 5)
	if len(lines) == 0 {
		return "We didn't land on concrete achievements this time, and that's useful to know too. " +
			"Before your next session, jot down three moments you changed an outcome at work; we'll turn those into resume lines."
	}

	var b strings.Builder
	b.WriteString("Here's what we dug up together:\n\n")
	for _, line := range lines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nPut the quantified lines at the top of your experience section")
	if st.Achievements > st.Quantified {
		b.WriteString(", and keep hunting for numbers on the rest")
	}
	b.WriteString(". This session is complete; start a new one whenever you want to mine another role.")
	return b.String()
}

func closingReply(st State) string {
	if st.Achievements > 0 {
		return fmt.Sprintf("We already wrapped up; you left with %d achievement lines. Start a new session to work on another role.", st.Achievements)
	}
	return "We already wrapped up. Start a new session whenever you're ready to dig again."
}

// pickStrongest prefers quantified achievements, keeping input order
// within each band.
func pickStrongest(collected []analysis.Achievement, n int) []string {
	var out []string
	for _, a := range collected {
		if a.Quantified {
			out = append(out, a.Text)
			if len(out) == n {
				return out
			}
		}
	}
	for _, a := range collected {
		if !a.Quantified {
			out = append(out, a.Text)
			if len(out) == n {
				return out
			}
		}
	}
	return out
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := strings.LastIndex(s[:n], " ")
	if cut <= 0 {
		cut = n
	}
	return s[:cut] + "..."
}
