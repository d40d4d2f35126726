package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rocketresume/rocket/pkg/analysis"
	"github.com/rocketresume/rocket/pkg/audit"
	"github.com/rocketresume/rocket/pkg/extract"
	"github.com/rocketresume/rocket/pkg/identity"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/queue"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/middleware"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// ListResumesResponse is the payload returned by GET /resumes
type ListResumesResponse struct {
	Resumes []model.Resume `json:"resumes"`
	Count   int64          `json:"count"`
}

// RegisterResumesEndpoints registers the resume upload, listing and
// analysis endpoints. All of them require a bearer token.
func RegisterResumesEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/api/v1/resumes").Subrouter()
	router.Use(middleware.NewTokenAuthenticator(s.Tokens).Middleware)

	router.HandleFunc("", handleUploadResume(s)).Methods("POST")
	router.HandleFunc("", handleListResumes(s)).Methods("GET")
	router.HandleFunc("/{id}", handleGetResume(s)).Methods("GET")
	router.HandleFunc("/{id}", handleDeleteResume(s)).Methods("DELETE")
	router.HandleFunc("/{id}/analysis", handleAnalyzeResume(s)).Methods("POST")
	router.HandleFunc("/{id}/analysis", handleGetAnalysis(s)).Methods("GET")
}

func handleUploadResume(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes)
		if err := r.ParseMultipartForm(s.Config.MaxUploadBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				respondWithError(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
				return
			}
			respondWithError(w, http.StatusBadRequest, "malformed multipart request")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		if !extract.Supported(contentType) {
			audit.Log(audit.UploadEvent{
				UserID:       id.UserID,
				Filename:     header.Filename,
				ContentType:  contentType,
				IP:           clientIP(r),
				Success:      false,
				ErrorMessage: "unsupported file type",
			})
			respondWithError(w, http.StatusUnprocessableEntity, "unsupported file type: expected pdf, docx or plain text")
			return
		}

		text, err := extract.Text(contentType, data)
		if err != nil {
			audit.Log(audit.UploadEvent{
				UserID:       id.UserID,
				Filename:     header.Filename,
				ContentType:  contentType,
				IP:           clientIP(r),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusUnprocessableEntity, "failed to extract text from file")
			return
		}

		filename := filepath.Base(header.Filename)
		title := strings.TrimSpace(r.FormValue("title"))
		if title == "" {
			title = strings.TrimSuffix(filename, filepath.Ext(filename))
		}

		resume := &model.Resume{
			ID:          uuid.NewString(),
			UserID:      id.UserID,
			Title:       title,
			Filename:    filename,
			ContentType: contentType,
			ContentText: text,
			WordCount:   analysis.WordCount(text),
			Status:      model.ResumeStatusUploaded,
		}
		resume.StorageKey = "resumes/" + resume.ID + "/" + filename

		if s.Storage != nil {
			if err := s.Storage.Put(r.Context(), resume.StorageKey, data, contentType); err != nil {
				respondWithError(w, http.StatusInternalServerError, "failed to store uploaded file")
				return
			}
		}

		if err := s.Resumes.CreateResume(resume); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save resume")
			return
		}

		// Analysis through the queue is best-effort. The resume stays
		// in the uploaded state until a worker picks it up; a broker
		// outage must not fail the upload.
		if s.Queue != nil {
			_ = s.Queue.PublishRequest(queue.AnalysisRequest{
				ResumeID: resume.ID,
				Kind:     model.AnalysisKindQuality,
			})
		}

		audit.Log(audit.UploadEvent{
			UserID:      id.UserID,
			ResumeID:    resume.ID,
			Filename:    filename,
			ContentType: contentType,
			IP:          clientIP(r),
			Success:     true,
		})
		respondWithJSON(w, http.StatusCreated, resume)
	}
}

func handleListResumes(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		limit, offset := listParams(r, s.Config)
		search := r.URL.Query().Get("search")

		resumes, count, err := s.Resumes.ListResumes(id.UserID, search, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to list resumes")
			return
		}
		respondWithJSON(w, http.StatusOK, ListResumesResponse{Resumes: resumes, Count: count})
	}
}

func handleGetResume(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		resume, err := s.Resumes.FetchResume(id.UserID, mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrResumeNotFound) {
				respondWithError(w, http.StatusNotFound, "resume not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch resume")
			return
		}
		respondWithJSON(w, http.StatusOK, resume)
	}
}

func handleDeleteResume(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}
		resumeID := mux.Vars(r)["id"]

		resume, err := s.Resumes.FetchResume(id.UserID, resumeID)
		if err != nil {
			if errors.Is(err, store.ErrResumeNotFound) {
				respondWithError(w, http.StatusNotFound, "resume not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch resume")
			return
		}

		if err := s.Resumes.DeleteResume(id.UserID, resumeID); err != nil {
			if errors.Is(err, store.ErrResumeNotFound) {
				respondWithError(w, http.StatusNotFound, "resume not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to delete resume")
			return
		}

		// The stored file is cleaned up after the row so a backend
		// failure cannot resurrect a deleted resume.
		if s.Storage != nil && resume.StorageKey != "" {
			_ = s.Storage.Delete(r.Context(), resume.StorageKey)
		}

		audit.Log(audit.DeleteEvent{
			UserID:   id.UserID,
			ResumeID: resumeID,
			IP:       clientIP(r),
			Success:  true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleAnalyzeResume(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		resume, err := s.Resumes.FetchResume(id.UserID, mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrResumeNotFound) {
				respondWithError(w, http.StatusNotFound, "resume not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch resume")
			return
		}

		report := analysis.AnalyzeQuality(resume.ContentText)
		breakdown, err := json.Marshal(report.Components)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to encode analysis")
			return
		}
		suggestions, err := json.Marshal(report.Suggestions)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to encode analysis")
			return
		}

		record := &model.Analysis{
			ResumeID:     resume.ID,
			Kind:         model.AnalysisKindQuality,
			OverallScore: report.OverallScore,
			Breakdown:    breakdown,
			Suggestions:  suggestions,
			Engine:       report.Engine,
		}
		if err := s.Analyses.CreateAnalysis(record); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to save analysis")
			return
		}
		if err := s.Resumes.UpdateResumeStatus(resume.ID, model.ResumeStatusAnalyzed); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to update resume status")
			return
		}

		audit.Log(audit.AnalyzeEvent{
			UserID:   id.UserID,
			ResumeID: resume.ID,
			Engine:   report.Engine,
			Score:    report.OverallScore,
			IP:       clientIP(r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusCreated, record)
	}
}

func handleGetAnalysis(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		resume, err := s.Resumes.FetchResume(id.UserID, mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrResumeNotFound) {
				respondWithError(w, http.StatusNotFound, "resume not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch resume")
			return
		}

		record, err := s.Analyses.LatestAnalysis(resume.ID, model.AnalysisKindQuality)
		if err != nil {
			if errors.Is(err, store.ErrAnalysisNotFound) {
				respondWithError(w, http.StatusNotFound, "resume has not been analyzed yet")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch analysis")
			return
		}
		respondWithJSON(w, http.StatusOK, record)
	}
}
