package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/rocketresume/rocket/pkg/analysis"
	"github.com/rocketresume/rocket/pkg/audit"
	"github.com/rocketresume/rocket/pkg/identity"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/persona"
	"github.com/rocketresume/rocket/pkg/rocket"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/middleware"
	"github.com/rocketresume/rocket/pkg/server/store"
)

type startSessionRequest struct {
	PersonaID   string `json:"persona_id"`
	Goal        string `json:"goal"`
	CareerStage string `json:"career_stage"`
}

type processRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// StartSessionResponse is the payload returned by /conversation/start
type StartSessionResponse struct {
	Session *model.ConversationSession `json:"session"`
	Message string                     `json:"message"`
}

// ProcessResponse is the payload returned by /conversation/process
type ProcessResponse struct {
	Reply        string                 `json:"reply"`
	Phase        string                 `json:"phase"`
	Advanced     bool                   `json:"advanced"`
	Completed    bool                   `json:"completed"`
	Achievements []analysis.Achievement `json:"achievements,omitempty"`
}

// SessionResponse is the payload returned by /conversation/{id}
type SessionResponse struct {
	Session  *model.ConversationSession  `json:"session"`
	Messages []model.ConversationMessage `json:"messages"`
}

// RegisterConversationEndpoints registers the coaching conversation
// endpoints. All of them require a bearer token.
func RegisterConversationEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/api/v1/conversation").Subrouter()
	router.Use(middleware.NewTokenAuthenticator(s.Tokens).Middleware)

	router.HandleFunc("/start", handleStartSession(s)).Methods("POST")
	router.HandleFunc("/process", handleProcessMessage(s)).Methods("POST")
	router.HandleFunc("/{id}", handleGetSession(s)).Methods("GET")
}

func handleStartSession(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		var req startSessionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		var p persona.Persona
		if req.PersonaID != "" {
			found, ok := persona.Get(req.PersonaID)
			if !ok {
				respondWithError(w, http.StatusUnprocessableEntity, "unknown persona")
				return
			}
			p = found
		} else {
			// Recommend never returns an empty list; the default trio
			// backs it.
			p = persona.Recommend(req.Goal, req.CareerStage)[0]
		}

		state := rocket.NewState()
		metadata, err := state.Encode()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to start session")
			return
		}

		session := &model.ConversationSession{
			UserID:    id.UserID,
			PersonaID: p.ID,
			Phase:     string(state.Phase),
			Status:    model.SessionStatusActive,
			Metadata:  metadata,
		}
		if err := s.Conversations.CreateSession(session); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to start session")
			return
		}

		opening := s.Coach.Opening(p)
		message := &model.ConversationMessage{
			SessionID: session.ID,
			Role:      model.MessageRoleCoach,
			Content:   opening,
			Phase:     session.Phase,
		}
		if err := s.Conversations.AppendMessage(message); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to start session")
			return
		}

		audit.Log(audit.SessionEvent{
			UserID:    id.UserID,
			SessionID: session.ID,
			PersonaID: p.ID,
			Phase:     session.Phase,
			Action:    "start",
			IP:        clientIP(r),
			Success:   true,
		})
		respondWithJSON(w, http.StatusCreated, StartSessionResponse{Session: session, Message: opening})
	}
}

func handleProcessMessage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		var req processRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.SessionID == "" || strings.TrimSpace(req.Message) == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "session_id and message are required")
			return
		}

		session, err := s.Conversations.FetchSession(id.UserID, req.SessionID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				respondWithError(w, http.StatusNotFound, "session not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch session")
			return
		}

		p, ok := persona.Get(session.PersonaID)
		if !ok {
			p = persona.Default()
		}
		state := rocket.DecodeState(session.Metadata)

		if err := s.Conversations.AppendMessage(&model.ConversationMessage{
			SessionID: session.ID,
			Role:      model.MessageRoleUser,
			Content:   req.Message,
			Phase:     string(state.Phase),
		}); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to record message")
			return
		}

		turn := s.Coach.Process(r.Context(), p, state, req.Message)

		session.Phase = string(turn.State.Phase)
		if turn.Completed {
			session.Status = model.SessionStatusCompleted
		}
		metadata, err := turn.State.Encode()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save session")
			return
		}
		session.Metadata = metadata
		if err := s.Conversations.UpdateSession(session); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save session")
			return
		}

		if err := s.Conversations.AppendMessage(&model.ConversationMessage{
			SessionID: session.ID,
			Role:      model.MessageRoleCoach,
			Content:   turn.Reply,
			Phase:     session.Phase,
		}); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to record reply")
			return
		}

		audit.Log(audit.SessionEvent{
			UserID:    id.UserID,
			SessionID: session.ID,
			PersonaID: session.PersonaID,
			Phase:     session.Phase,
			Action:    "process",
			IP:        clientIP(r),
			Success:   true,
		})
		respondWithJSON(w, http.StatusOK, ProcessResponse{
			Reply:        turn.Reply,
			Phase:        session.Phase,
			Advanced:     turn.Advanced,
			Completed:    turn.Completed,
			Achievements: turn.Achievements,
		})
	}
}

func handleGetSession(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		session, err := s.Conversations.FetchSession(id.UserID, mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				respondWithError(w, http.StatusNotFound, "session not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch session")
			return
		}

		messages, err := s.Conversations.ListMessages(session.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch messages")
			return
		}
		respondWithJSON(w, http.StatusOK, SessionResponse{Session: session, Messages: messages})
	}
}
