package integration

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/rocketresume/rocket/pkg/persona"
	"github.com/rocketresume/rocket/pkg/server/endpoints"
)

// Persona catalog steps

func (s *StepsContext) iListTheAvailablePersonas() error {
	return s.get("/api/v1/personas/available")
}

func (s *StepsContext) thePersonaCatalogShouldInclude(id string) error {
	personas, err := s.parsePersonas()
	if err != nil {
		return err
	}
	for _, p := range personas {
		if p.ID == id {
			return nil
		}
	}
	return fmt.Errorf("persona %q not found in catalog: %s", id, string(s.responseBody))
}

func (s *StepsContext) iAskForAPersonaRecommendation(goal string) error {
	return s.postJSON("/api/v1/personas/recommend", map[string]string{
		"goal": goal,
	})
}

func (s *StepsContext) theFirstRecommendedPersonaShouldBe(id string) error {
	personas, err := s.parsePersonas()
	if err != nil {
		return err
	}
	if len(personas) == 0 {
		return fmt.Errorf("expected at least one recommended persona")
	}
	if personas[0].ID != id {
		return fmt.Errorf("expected first persona %q, got %q", id, personas[0].ID)
	}
	return nil
}

func (s *StepsContext) parsePersonas() ([]persona.Persona, error) {
	var resp endpoints.PersonasResponse
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse personas response: %w", err)
	}
	return resp.Personas, nil
}

// Conversation steps

func (s *StepsContext) iStartACoachingSession(personaID string) error {
	if err := s.postJSON("/api/v1/conversation/start", map[string]string{
		"persona_id": personaID,
	}); err != nil {
		return err
	}

	if s.response.StatusCode == 201 {
		var start endpoints.StartSessionResponse
		if err := json.Unmarshal(s.responseBody, &start); err != nil {
			return fmt.Errorf("failed to parse start response: %w", err)
		}
		if start.Session == nil {
			return fmt.Errorf("missing session in start response: %s", string(s.responseBody))
		}
		s.sessionID = start.Session.ID
		s.lastOpening = start.Message
	}
	return nil
}

func (s *StepsContext) iFetchTheCoachingSession() error {
	return s.get("/api/v1/conversation/" + s.sessionID)
}

func (s *StepsContext) theCoachShouldGreetMe() error {
	if strings.TrimSpace(s.lastOpening) == "" {
		return fmt.Errorf("expected an opening message from the coach")
	}
	return nil
}

func (s *StepsContext) iTellTheCoach(message *godog.DocString) error {
	return s.postJSON("/api/v1/conversation/process", map[string]string{
		"session_id": s.sessionID,
		"message":    message.Content,
	})
}

func (s *StepsContext) theCoachShouldReply() error {
	process, err := s.parseProcessResponse()
	if err != nil {
		return err
	}
	if strings.TrimSpace(process.Reply) == "" {
		return fmt.Errorf("expected a reply from the coach")
	}
	return nil
}

func (s *StepsContext) theSessionShouldBeInPhase(phase string) error {
	if err := s.get("/api/v1/conversation/" + s.sessionID); err != nil {
		return err
	}
	if s.response.StatusCode != 200 {
		return fmt.Errorf("failed to fetch session: %d %s", s.response.StatusCode, string(s.responseBody))
	}

	var session endpoints.SessionResponse
	if err := json.Unmarshal(s.responseBody, &session); err != nil {
		return fmt.Errorf("failed to parse session response: %w", err)
	}
	if session.Session.Phase != phase {
		return fmt.Errorf("expected phase %q, got %q", phase, session.Session.Phase)
	}
	return nil
}

func (s *StepsContext) theTranscriptShouldHaveAtLeastMessages(min int) error {
	if err := s.get("/api/v1/conversation/" + s.sessionID); err != nil {
		return err
	}
	if s.response.StatusCode != 200 {
		return fmt.Errorf("failed to fetch session: %d %s", s.response.StatusCode, string(s.responseBody))
	}

	var session endpoints.SessionResponse
	if err := json.Unmarshal(s.responseBody, &session); err != nil {
		return fmt.Errorf("failed to parse session response: %w", err)
	}
	if len(session.Messages) < min {
		return fmt.Errorf("expected at least %d messages, got %d", min, len(session.Messages))
	}
	return nil
}

func (s *StepsContext) parseProcessResponse() (*endpoints.ProcessResponse, error) {
	var process endpoints.ProcessResponse
	if err := json.Unmarshal(s.responseBody, &process); err != nil {
		return nil, fmt.Errorf("failed to parse process response: %w", err)
	}
	return &process, nil
}
