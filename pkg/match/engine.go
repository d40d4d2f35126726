package match

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/rocketresume/rocket/pkg/ai"
	"github.com/rocketresume/rocket/pkg/model"
)

// EngineName identifies the scorer in stored analysis rows. "+ai" is
// appended when a provider verdict was blended in.
const EngineName = "match-v1"

// aiBlendWeight is the share of the final score taken from the AI
// verdict when one is available.
const aiBlendWeight = 0.3

// Skill score dominates; seniority alignment nudges.
const (
	skillWeight     = 0.8
	seniorityWeight = 0.2
)

// requiredSkillWeight and desiredSkillWeight set how much a posting
// skill counts toward the score depending on how the posting phrases it.
const (
	requiredSkillWeight = 1.0
	desiredSkillWeight  = 0.5
	partialCreditFactor = 0.5
)

// PartialSkill records partial credit: the posting asks for Skill, the
// resume offers the related Via instead.
type PartialSkill struct {
	Skill string `json:"skill"`
	Via   string `json:"via"`
}

// Result is the outcome of matching one resume against one posting.
type Result struct {
	Score          int            `json:"score"`
	MatchedSkills  []string       `json:"matched_skills"`
	MissingSkills  []string       `json:"missing_skills"`
	PartialSkills  []PartialSkill `json:"partial_skills,omitempty"`
	SkillScore     int            `json:"skill_score"`
	SeniorityScore int            `json:"seniority_score"`
	ResumeLevel    string         `json:"resume_level"`
	JobLevel       string         `json:"job_level"`
	Summary        string         `json:"summary"`
	Recommendation string         `json:"recommendation"`
	Engine         string         `json:"engine"`
}

// Engine matches resumes against postings. The zero value is not
// usable; construct with New.
type Engine struct {
	provider ai.Provider
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithProvider enables AI blending. A Nop provider is harmless: its
// failure path is the same as any other provider outage.
func WithProvider(p ai.Provider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds a match engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match scores resumeText against the posting. It always returns a
// result; AI enrichment failures degrade to the deterministic scorer.
func (e *Engine) Match(ctx context.Context, resumeText string, job *model.JobPosting) *Result {
	result := e.deterministic(resumeText, job)
	if e.provider == nil {
		return result
	}

	verdict, err := e.askProvider(ctx, resumeText, job)
	if err != nil {
		e.logger.Debug("ai match enrichment skipped", "job_id", job.ID, "error", err)
		return result
	}

	blended := (1-aiBlendWeight)*float64(result.Score) + aiBlendWeight*float64(verdict.MatchScore)
	result.Score = clamp(int(math.Round(blended)))
	if verdict.Summary != "" {
		result.Summary = verdict.Summary
	}
	if verdict.Recommendation != "" {
		result.Recommendation = verdict.Recommendation
	}
	result.Engine = EngineName + "+ai"
	return result
}

// jobSkill is one skill the posting asks for, with its weight.
type jobSkill struct {
	name     string
	weight   float64
	required bool
}

func (e *Engine) deterministic(resumeText string, job *model.JobPosting) *Result {
	resumeLower := strings.ToLower(resumeText)
	have := map[string]bool{}
	for _, s := range ExtractSkills(resumeText) {
		have[s] = true
	}

	wanted := jobSkills(job)

	var (
		matched         []string
		missingRequired []string
		missingDesired  []string
		partial         []PartialSkill
		credit, total   float64
	)
	for _, ws := range wanted {
		total += ws.weight
		switch {
		case have[ws.name]:
			matched = append(matched, ws.name)
			credit += ws.weight
		default:
			if via := relatedSkill(ws.name, have); via != "" {
				partial = append(partial, PartialSkill{Skill: ws.name, Via: via})
				credit += ws.weight * partialCreditFactor
			}
			if ws.required {
				missingRequired = append(missingRequired, ws.name)
			} else {
				missingDesired = append(missingDesired, ws.name)
			}
		}
	}

	skillScore := 50 // neutral when the posting names nothing recognizable
	if total > 0 {
		skillScore = clamp(int(math.Round(credit / total * 100)))
	}

	resumeLevel := estimateSeniority(resumeLower)
	jobLevel := seniorityFromLabel(job.Seniority)
	if jobLevel == levelUnknown {
		jobLevel = estimateSeniority(strings.ToLower(job.Title + "\n" + job.Description))
	}
	seniorityScore := alignmentScore(resumeLevel, jobLevel)

	score := clamp(int(math.Round(skillWeight*float64(skillScore) + seniorityWeight*float64(seniorityScore))))
	missing := append(missingRequired, missingDesired...)

	return &Result{
		Score:          score,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		PartialSkills:  partial,
		SkillScore:     skillScore,
		SeniorityScore: seniorityScore,
		ResumeLevel:    levelNames[resumeLevel],
		JobLevel:       levelNames[jobLevel],
		Summary:        summarize(matched, missing, len(wanted)),
		Recommendation: recommend(score),
		Engine:         EngineName,
	}
}

// jobSkills extracts what the posting asks for. The explicit skills
// list counts as required; skills found in the description are required
// when their line reads like a requirement, desired otherwise.
func jobSkills(job *model.JobPosting) []jobSkill {
	var (
		ordered []jobSkill
		seen    = map[string]int{} // name -> index into ordered
	)
	add := func(name string, required bool) {
		w := desiredSkillWeight
		if required {
			w = requiredSkillWeight
		}
		if i, ok := seen[name]; ok {
			if w > ordered[i].weight {
				ordered[i].weight = w
				ordered[i].required = required
			}
			return
		}
		seen[name] = len(ordered)
		ordered = append(ordered, jobSkill{name: name, weight: w, required: required})
	}

	var explicit []string
	if len(job.Skills) > 0 {
		// a malformed skills column degrades to description scanning
		_ = json.Unmarshal(job.Skills, &explicit)
	}
	for _, s := range explicit {
		add(canonicalize(s), true)
	}

	for _, line := range strings.Split(strings.ToLower(job.Description), "\n") {
		required := containsAny(line, "required", "must have", "must-have", "essential", "need")
		for _, s := range ExtractSkills(line) {
			add(s, required)
		}
	}
	return ordered
}

func summarize(matched, missing []string, wanted int) string {
	if wanted == 0 {
		return "The posting names no skills the dictionary recognizes; the score reflects seniority fit only."
	}
	s := fmt.Sprintf("Matched %d of %d skills the posting asks for.", len(matched), wanted)
	if len(missing) > 0 {
		shown := missing
		if len(shown) > 5 {
			shown = shown[:5]
		}
		s += " Missing: " + strings.Join(shown, ", ") + "."
	}
	return s
}

func recommend(score int) string {
	switch {
	case score >= 80:
		return "Strong match. Apply with your resume as it stands."
	case score >= 60:
		return "Good match. Tailor your summary toward the posting's top requirements before applying."
	case score >= 40:
		return "Partial match. Address the missing skills in your resume or cover letter."
	default:
		return "Weak match. Consider postings closer to your current skill set."
	}
}

const maxPromptChars = 6000

type aiVerdict struct {
	MatchScore     int      `json:"match_score"`
	RelevantSkills []string `json:"relevant_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
}

func (e *Engine) askProvider(ctx context.Context, resumeText string, job *model.JobPosting) (*aiVerdict, error) {
	prompt := fmt.Sprintf(`You are a recruiting assistant. Compare the resume to the job posting and answer with only a JSON object of this exact shape:
{"match_score": <integer 0-100>, "relevant_skills": ["..."], "missing_skills": ["..."], "summary": "<two sentences>", "recommendation": "<one sentence>"}

Job posting:
Title: %s
Company: %s
Seniority: %s
%s

Resume:
%s`,
		job.Title, job.Company, job.Seniority,
		truncate(job.Description, maxPromptChars),
		truncate(resumeText, maxPromptChars))

	raw, err := e.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var verdict aiVerdict
	if err := json.Unmarshal([]byte(ai.CleanJSON(raw)), &verdict); err != nil {
		return nil, fmt.Errorf("parsing ai verdict: %w", err)
	}
	verdict.MatchScore = clamp(verdict.MatchScore)
	return &verdict, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
