package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// ListTemplatesResponse is the payload returned by GET /templates
type ListTemplatesResponse struct {
	Templates []model.ResumeTemplate `json:"templates"`
}

// RegisterTemplatesEndpoints registers the resume template catalog.
// Templates are read-only reference data, so no token is required.
func RegisterTemplatesEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/v1/templates", handleListTemplates(s.Templates)).Methods("GET")
	s.Router.HandleFunc("/api/v1/templates/{id}", handleGetTemplate(s.Templates)).Methods("GET")
}

func handleListTemplates(templates store.TemplatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := templates.ListTemplates()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list templates")
			return
		}
		respondWithJSON(w, http.StatusOK, ListTemplatesResponse{Templates: list})
	}
}

func handleGetTemplate(templates store.TemplatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		template, err := templates.FetchTemplate(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrTemplateNotFound) {
				respondWithError(w, http.StatusNotFound, "template not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch template")
			return
		}
		respondWithJSON(w, http.StatusOK, template)
	}
}
