package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rocketresume/rocket/pkg/audit"
	"github.com/rocketresume/rocket/pkg/identity"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/middleware"
	"github.com/rocketresume/rocket/pkg/server/store"
)

type jobRequest struct {
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Skills      json.RawMessage `json:"skills"`
	Seniority   string          `json:"seniority"`
	SourceURL   string          `json:"source_url"`
}

type matchRequest struct {
	ResumeID string `json:"resume_id"`
}

// ListJobsResponse is the payload returned by GET /jobs
type ListJobsResponse struct {
	Jobs  []model.JobPosting `json:"jobs"`
	Count int64              `json:"count"`
}

// RegisterJobsEndpoints registers the job posting and matching
// endpoints. All of them require a bearer token.
func RegisterJobsEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/api/v1/jobs").Subrouter()
	router.Use(middleware.NewTokenAuthenticator(s.Tokens).Middleware)

	router.HandleFunc("", handleCreateJob(s)).Methods("POST")
	router.HandleFunc("", handleListJobs(s)).Methods("GET")
	router.HandleFunc("/{id}", handleGetJob(s)).Methods("GET")
	router.HandleFunc("/{id}", handleDeleteJob(s)).Methods("DELETE")
	router.HandleFunc("/{id}/match", handleMatchJob(s)).Methods("POST")
}

func handleCreateJob(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		var req jobRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" || strings.TrimSpace(req.Description) == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "title and description are required")
			return
		}

		userID := id.UserID
		job := &model.JobPosting{
			ID:          uuid.NewString(),
			UserID:      &userID,
			Title:       req.Title,
			Company:     strings.TrimSpace(req.Company),
			Location:    strings.TrimSpace(req.Location),
			Description: req.Description,
			Skills:      model.JSON(req.Skills),
			Seniority:   strings.ToLower(strings.TrimSpace(req.Seniority)),
			SourceURL:   strings.TrimSpace(req.SourceURL),
		}
		if err := s.Jobs.CreateJob(job); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save job posting")
			return
		}
		respondWithJSON(w, http.StatusCreated, job)
	}
}

func handleListJobs(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		limit, offset := listParams(r, s.Config)
		jobs, count, err := s.Jobs.ListJobs(id.UserID, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list job postings")
			return
		}
		respondWithJSON(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: count})
	}
}

func handleGetJob(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		job, err := s.Jobs.FetchJob(id.UserID, mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrJobNotFound) {
				respondWithError(w, http.StatusNotFound, "job posting not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch job posting")
			return
		}
		respondWithJSON(w, http.StatusOK, job)
	}
}

func handleDeleteJob(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		if err := s.Jobs.DeleteJob(id.UserID, mux.Vars(r)["id"]); err != nil {
			if errors.Is(err, store.ErrJobNotFound) {
				respondWithError(w, http.StatusNotFound, "job posting not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to delete job posting")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleMatchJob(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		var req matchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if req.ResumeID == "" {
			respondWithError(w, http.StatusUnprocessableEntity, "resume_id is required")
			return
		}

		job, err := s.Jobs.FetchJob(id.UserID, mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrJobNotFound) {
				respondWithError(w, http.StatusNotFound, "job posting not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch job posting")
			return
		}

		resume, err := s.Resumes.FetchResume(id.UserID, req.ResumeID)
		if err != nil {
			if errors.Is(err, store.ErrResumeNotFound) {
				respondWithError(w, http.StatusNotFound, "resume not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch resume")
			return
		}

		result := s.Matcher.Match(r.Context(), resume.ContentText, job)

		breakdown, err := json.Marshal(result)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to encode match result")
			return
		}
		suggestions, err := json.Marshal([]string{result.Recommendation})
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to encode match result")
			return
		}

		record := &model.Analysis{
			ResumeID:     resume.ID,
			JobID:        &job.ID,
			Kind:         model.AnalysisKindMatch,
			OverallScore: result.Score,
			Breakdown:    breakdown,
			Suggestions:  suggestions,
			Engine:       result.Engine,
		}
		if err := s.Analyses.CreateAnalysis(record); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save match result")
			return
		}

		audit.Log(audit.MatchEvent{
			UserID:   id.UserID,
			ResumeID: resume.ID,
			JobID:    job.ID,
			Score:    result.Score,
			IP:       clientIP(r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusCreated, record)
	}
}
