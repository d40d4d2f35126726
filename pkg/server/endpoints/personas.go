package endpoints

import (
	"net/http"

	"github.com/rocketresume/rocket/pkg/persona"
	"github.com/rocketresume/rocket/pkg/server"
)

type recommendRequest struct {
	Goal        string `json:"goal"`
	CareerStage string `json:"career_stage"`
	Challenge   string `json:"challenge"`
}

// PersonasResponse is the payload returned by the persona endpoints
type PersonasResponse struct {
	Personas []persona.Persona `json:"personas"`
}

// RegisterPersonasEndpoints registers the coaching persona catalog and
// recommender. The catalog is public so clients can present persona
// choices before a user signs in.
func RegisterPersonasEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/v1/personas/available", handleListPersonas()).Methods("GET")
	s.Router.HandleFunc("/api/v1/personas/recommend", handleRecommendPersonas()).Methods("POST")
}

func handleListPersonas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, PersonasResponse{Personas: persona.All()})
	}
}

func handleRecommendPersonas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recommendRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		// A challenge statement stands in for the goal when no goal
		// was given, e.g. "career_transition" as a challenge keys the
		// same persona goals.
		goal := req.Goal
		if goal == "" {
			goal = req.Challenge
		}
		respondWithJSON(w, http.StatusOK, PersonasResponse{
			Personas: persona.Recommend(goal, req.CareerStage),
		})
	}
}
