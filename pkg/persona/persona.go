package persona

import (
	"encoding/json"
	"strings"

	"github.com/rocketresume/rocket/pkg/model"
)

// Goal slugs understood by the selector. Free-form input is normalized
// before lookup, so "Career Change" and "career_change" both resolve.
const (
	GoalJobSearch         = "job_search"
	GoalCareerChange      = "career_change"
	GoalPromotion         = "promotion"
	GoalSalaryNegotiation = "salary_negotiation"
	GoalInterviewPrep     = "interview_prep"
	GoalFirstJob          = "first_job"
	GoalLeadership        = "leadership"
	GoalNetworking        = "networking"
)

// Career stage slugs.
const (
	StageStudent       = "student"
	StageEarlyCareer   = "early_career"
	StageMidCareer     = "mid_career"
	StageSenior        = "senior"
	StageExecutive     = "executive"
	StageCareerChanger = "career_changer"
)

// Style describes how a persona talks to the user.
type Style struct {
	Tone     string `json:"tone"`
	Approach string `json:"approach"`
	Pacing   string `json:"pacing"`
}

// Persona is one coaching persona. IDs are stable slugs and double as
// primary keys in persona_profiles.
type Persona struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Title            string   `json:"title"`
	Tagline          string   `json:"tagline"`
	ExpertiseAreas   []string `json:"expertise_areas"`
	Style            Style    `json:"conversation_style"`
	OpeningQuestions []string `json:"opening_questions"`
	Goals            []string `json:"goals"`
	CareerStages     []string `json:"career_stages"`
}

// registry holds every persona in presentation order. Order matters:
// the selector breaks ties by position, and the first three entries
// after the default coach form the fallback recommendation.
var registry = []Persona{
	{
		ID:      "career-strategist",
		Name:    "Alexis Rivera",
		Title:   "Career Strategist",
		Tagline: "Maps where you are to where you want to be, one move at a time.",
		ExpertiseAreas: []string{
			"career planning", "positioning", "resume strategy",
		},
		Style: Style{Tone: "direct", Approach: "structured", Pacing: "steady"},
		OpeningQuestions: []string{
			"What does the next role you actually want look like?",
			"Walk me through the last project you were proud of. What was your part in it?",
			"If a hiring manager read only the top third of your resume, what should they take away?",
		},
		Goals:        []string{GoalJobSearch, GoalCareerChange},
		CareerStages: []string{StageMidCareer, StageSenior},
	},
	{
		ID:      "story-coach",
		Name:    "Elena Vasquez",
		Title:   "Narrative Coach",
		Tagline: "Turns a list of duties into a story a recruiter remembers.",
		ExpertiseAreas: []string{
			"storytelling", "personal branding", "achievement framing",
		},
		Style: Style{Tone: "warm", Approach: "exploratory", Pacing: "unhurried"},
		OpeningQuestions: []string{
			"Tell me about a moment at work when you thought: this is why they hired me.",
			"What problem did you walk into on day one of your current role, and what happened next?",
			"Which accomplishment do you find hardest to explain? Let's start there.",
		},
		Goals:        []string{GoalJobSearch, GoalInterviewPrep, GoalCareerChange},
		CareerStages: []string{StageEarlyCareer, StageMidCareer, StageCareerChanger},
	},
	{
		ID:      "interview-coach",
		Name:    "Priya Nandakumar",
		Title:   "Interview Coach",
		Tagline: "Rehearses the questions before the interviewer asks them.",
		ExpertiseAreas: []string{
			"behavioral interviews", "technical screens", "negotiation openers",
		},
		Style: Style{Tone: "energetic", Approach: "drill-based", Pacing: "fast"},
		OpeningQuestions: []string{
			"Which interview question do you dread most?",
			"Give me your sixty-second introduction, exactly as you'd say it out loud.",
			"Tell me about a time you disagreed with your manager. What did you do?",
		},
		Goals:        []string{GoalInterviewPrep, GoalJobSearch},
		CareerStages: []string{StageEarlyCareer, StageMidCareer},
	},
	{
		ID:      "executive-coach",
		Name:    "Morgan Hale",
		Title:   "Executive Leadership Coach",
		Tagline: "Positions operators as leaders and leaders as executives.",
		ExpertiseAreas: []string{
			"executive presence", "org leadership", "board-level framing",
		},
		Style: Style{Tone: "measured", Approach: "socratic", Pacing: "deliberate"},
		OpeningQuestions: []string{
			"What is the largest team or budget you have owned end to end?",
			"What decision did you make that your successor still lives with?",
			"How would your directs describe the way you run a planning cycle?",
		},
		Goals:        []string{GoalPromotion, GoalLeadership},
		CareerStages: []string{StageSenior, StageExecutive},
	},
	{
		ID:      "comp-strategist",
		Name:    "Daniel Okafor",
		Title:   "Compensation Strategist",
		Tagline: "Builds the case that makes the number negotiable.",
		ExpertiseAreas: []string{
			"salary negotiation", "offer evaluation", "impact quantification",
		},
		Style: Style{Tone: "calm", Approach: "evidence-first", Pacing: "steady"},
		OpeningQuestions: []string{
			"What did your work save or earn for your employer last year, in numbers?",
			"When you last got an offer, what did you say after they named the figure?",
			"Which of your responsibilities grew without your title or pay following?",
		},
		Goals:        []string{GoalSalaryNegotiation, GoalPromotion},
		CareerStages: []string{StageMidCareer, StageSenior, StageExecutive},
	},
	{
		ID:      "first-role-mentor",
		Name:    "Hannah Liu",
		Title:   "Early Career Mentor",
		Tagline: "Finds the experience you didn't know counted as experience.",
		ExpertiseAreas: []string{
			"internships", "first resumes", "transferable coursework",
		},
		Style: Style{Tone: "encouraging", Approach: "scaffolded", Pacing: "unhurried"},
		OpeningQuestions: []string{
			"What's something you built, organized, or fixed, in school or out of it?",
			"Which class project felt closest to a real job? What did you do in it?",
			"Have you ever taught anyone anything? How did you go about it?",
		},
		Goals:        []string{GoalFirstJob, GoalJobSearch},
		CareerStages: []string{StageStudent, StageEarlyCareer},
	},
	{
		ID:      "industry-insider",
		Name:    "Marcus Webb",
		Title:   "Industry Insider",
		Tagline: "Translates your track record into the language of a new field.",
		ExpertiseAreas: []string{
			"career pivots", "industry translation", "referral networking",
		},
		Style: Style{Tone: "candid", Approach: "translation", Pacing: "steady"},
		OpeningQuestions: []string{
			"What field are you moving toward, and what pulled you to it?",
			"Which of your current skills do you suspect won't transfer? Let's test that.",
			"Who do you already know on the inside of where you're headed?",
		},
		Goals:        []string{GoalCareerChange, GoalNetworking},
		CareerStages: []string{StageMidCareer, StageCareerChanger},
	},
}

// defaultTrio is returned when neither goal nor career stage matches
// anything in the registry.
var defaultTrio = []string{"career-strategist", "story-coach", "interview-coach"}

// DefaultID is the persona used for sessions started without an
// explicit choice.
const DefaultID = "career-strategist"

// All returns the full catalog in registry order. The slice is a copy;
// callers may reorder it freely.
func All() []Persona {
	out := make([]Persona, len(registry))
	copy(out, registry)
	return out
}

// Get looks a persona up by ID. Lookup is forgiving about separators,
// so "story_coach" and "Story Coach" both find "story-coach".
func Get(id string) (Persona, bool) {
	id = Normalize(id)
	for _, p := range registry {
		if Normalize(p.ID) == id {
			return p, true
		}
	}
	return Persona{}, false
}

// Default returns the fallback coach.
func Default() Persona {
	p, _ := Get(DefaultID)
	return p
}

// Normalize lowercases a slug-ish input and collapses spaces and
// hyphen/underscore variants so "Career Change" matches "career_change"
// and "story coach" matches "story-coach".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

// Profile converts a persona to its database mirror.
func (p Persona) Profile() (*model.PersonaProfile, error) {
	expertise, err := json.Marshal(p.ExpertiseAreas)
	if err != nil {
		return nil, err
	}
	style, err := json.Marshal(p.Style)
	if err != nil {
		return nil, err
	}
	questions, err := json.Marshal(p.OpeningQuestions)
	if err != nil {
		return nil, err
	}
	goals, err := json.Marshal(p.Goals)
	if err != nil {
		return nil, err
	}
	stages, err := json.Marshal(p.CareerStages)
	if err != nil {
		return nil, err
	}
	return &model.PersonaProfile{
		ID:                p.ID,
		Name:              p.Name,
		Title:             p.Title,
		Tagline:           p.Tagline,
		ExpertiseAreas:    model.JSON(expertise),
		ConversationStyle: model.JSON(style),
		OpeningQuestions:  model.JSON(questions),
		Goals:             model.JSON(goals),
		CareerStages:      model.JSON(stages),
	}, nil
}
