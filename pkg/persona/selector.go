package persona

// maxRecommendations caps the list returned by Recommend.
const maxRecommendations = 3

// Recommend picks up to three personas for a goal and career stage.
// Personas whose goal list contains the goal come first, then personas
// whose career-stage list contains the stage. Within each band registry
// order is preserved, and a persona matching both appears once, in the
// goal band. When nothing matches, the default trio is returned so the
// caller always has someone to offer.
func Recommend(goal, careerStage string) []Persona {
	goal = Normalize(goal)
	careerStage = Normalize(careerStage)

	picked := make([]Persona, 0, maxRecommendations)
	seen := make(map[string]bool, maxRecommendations)

	add := func(p Persona) bool {
		if seen[p.ID] {
			return len(picked) < maxRecommendations
		}
		seen[p.ID] = true
		picked = append(picked, p)
		return len(picked) < maxRecommendations
	}

	if goal != "" {
		for _, p := range registry {
			if contains(p.Goals, goal) && !add(p) {
				return picked
			}
		}
	}
	if careerStage != "" {
		for _, p := range registry {
			if contains(p.CareerStages, careerStage) && !add(p) {
				return picked
			}
		}
	}

	if len(picked) == 0 {
		for _, id := range defaultTrio {
			p, ok := Get(id)
			if !ok {
				continue
			}
			picked = append(picked, p)
		}
	}
	return picked
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if Normalize(s) == v {
			return true
		}
	}
	return false
}
