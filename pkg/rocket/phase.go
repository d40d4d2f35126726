package rocket

// Phase is one stage of the coaching flow.
type Phase string

const (
	PhaseIntro             Phase = "intro"
	PhaseStoryDiscovery    Phase = "story_discovery"
	PhaseAchievementMining Phase = "achievement_mining"
	PhaseQuantification    Phase = "quantification"
	PhaseSynthesis         Phase = "synthesis"
)

// phaseOrder fixes the forward-only progression.
var phaseOrder = []Phase{
	PhaseIntro,
	PhaseStoryDiscovery,
	PhaseAchievementMining,
	PhaseQuantification,
	PhaseSynthesis,
}

// Phases returns the progression in order.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}

// ValidPhase reports whether s names a known phase.
func ValidPhase(s string) bool {
	for _, p := range phaseOrder {
		if string(p) == s {
			return true
		}
	}
	return false
}

// next returns the phase after p. Synthesis is terminal and returns
// itself.
func next(p Phase) Phase {
	for i, cur := range phaseOrder {
		if cur == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1]
		}
	}
	return PhaseSynthesis
}

// maxPhaseExchanges force-advances a phase after this many user
// messages, whatever they contained. Intro moves fastest.
func maxPhaseExchanges(p Phase) int {
	if p == PhaseIntro {
		return 2
	}
	return 3
}
