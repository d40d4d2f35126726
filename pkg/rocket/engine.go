package rocket

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketresume/rocket/pkg/ai"
	"github.com/rocketresume/rocket/pkg/analysis"
	"github.com/rocketresume/rocket/pkg/persona"
)

// introAdvanceWords moves a session past intro as soon as the user
// gives a substantive first answer.
const introAdvanceWords = 15

// Turn is the engine's verdict on one user message.
type Turn struct {
	Reply        string                 `json:"reply"`
	State        State                  `json:"state"`
	Advanced     bool                   `json:"advanced"`
	Completed    bool                   `json:"completed"`
	Achievements []analysis.Achievement `json:"achievements,omitempty"`
}

// Engine turns user messages into coach replies. It is stateless and
// safe for concurrent use.
type Engine struct {
	provider ai.Provider
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithProvider enables AI reply rewriting.
func WithProvider(p ai.Provider) Option {
	return func(e *Engine) { e.provider = p }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds a coaching engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Opening is the coach's first message for a new session.
func (e *Engine) Opening(p persona.Persona) string {
	question := ""
	if len(p.OpeningQuestions) > 0 {
		question = p.OpeningQuestions[0]
	}
	return fmt.Sprintf("Hi, I'm %s, your %s. %s\n\nLet's start here: %s",
		p.Name, p.Title, p.Tagline, question)
}

// Process handles one user message: mines it, decides whether the
// session advances, and assembles the coach's reply.
func (e *Engine) Process(ctx context.Context, p persona.Persona, st State, message string) Turn {
	if !ValidPhase(string(st.Phase)) {
		st = NewState()
	}

	if st.Phase == PhaseSynthesis {
		// the session already wrapped up; stay closed
		return Turn{
			Reply:     closingReply(st),
			State:     st,
			Completed: true,
		}
	}

	mined := analysis.MineAchievements(message)
	st.absorb(mined)

	advanced := shouldAdvance(st, mined, message)
	if advanced {
		st.Phase = next(st.Phase)
		st.PhaseExchanges = 0
	}

	completed := st.Phase == PhaseSynthesis
	reply := e.reply(ctx, p, st, mined, completed)

	return Turn{
		Reply:        reply,
		State:        st,
		Advanced:     advanced,
		Completed:    completed,
		Achievements: mined,
	}
}

// shouldAdvance applies the transition rules. st has already absorbed
// the current message, so PhaseExchanges includes it.
func shouldAdvance(st State, mined []analysis.Achievement, message string) bool {
	if st.PhaseExchanges >= maxPhaseExchanges(st.Phase) {
		return true
	}
	switch st.Phase {
	case PhaseIntro:
		return analysis.WordCount(message) >= introAdvanceWords
	case PhaseStoryDiscovery:
		return len(mined) >= 1
	case PhaseAchievementMining:
		return len(mined) >= 2 || st.Achievements >= 3
	case PhaseQuantification:
		// numbers count even when no verb accompanies them; "from 45
		// minutes to 8" is a perfectly good answer here
		return analysis.HasMetric(message)
	default:
		return false
	}
}

func (e *Engine) reply(ctx context.Context, p persona.Persona, st State, mined []analysis.Achievement, completed bool) string {
	var reply string
	if completed {
		reply = synthesisReply(st)
	} else {
		reply = promptReply(p, st, mined)
	}

	if e.provider == nil {
		return reply
	}
	rewritten, err := e.provider.Complete(ctx, rewritePrompt(p, reply))
	if err != nil || strings.TrimSpace(rewritten) == "" {
		if err != nil {
			e.logger.Debug("ai reply rewrite skipped", "persona", p.ID, "error", err)
		}
		return reply
	}
	return strings.TrimSpace(rewritten)
}

// rewritePrompt asks the provider to restyle, not rethink: the phase
// machine owns what gets asked next.
func rewritePrompt(p persona.Persona, reply string) string {
	return fmt.Sprintf(`You are %s, a %s. Your style is %s and %s.
Rewrite the following coaching message in your voice. Keep every question it asks, keep it under 120 words, and do not add new questions.

%s`,
		p.Name, p.Title, p.Style.Tone, p.Style.Approach, reply)
}
