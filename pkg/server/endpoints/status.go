package endpoints

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/middleware"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// HealthResponse represents the response from /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// SystemStatusResponse represents the response from /api/v1/system/status
type SystemStatusResponse struct {
	Version  string        `json:"version"`
	Database string        `json:"database"`
	Queue    string        `json:"queue"`
	Counts   *store.Counts `json:"counts,omitempty"`
}

// RegisterStatusEndpoints registers the status and info endpoints
func RegisterStatusEndpoints(s *server.Server) {
	healthStore := s.Health

	// GET / - Status page (no auth required) - returns HTML for browsers
	s.Router.HandleFunc("/", handleStatus()).Methods("GET")

	// GET /health - liveness plus database connectivity (no auth required)
	s.Router.HandleFunc("/health", handleHealth(healthStore)).Methods("GET")

	statusRouter := s.Router.PathPrefix("/api/v1/system/status").Subrouter()
	statusRouter.Use(middleware.NewTokenAuthenticator(s.Tokens).Middleware)
	statusRouter.HandleFunc("", handleSystemStatus(s)).Methods("GET")
}

func displayVersion() string {
	version := os.Getenv("ROCKET_VERSION_DISPLAY")
	if version == "" {
		version = "0.1.0"
	}
	return version
}

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := displayVersion()

		// Check if JSON is requested via Accept header or format query param
		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"version": version})
			return
		}

		html := `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Rocket Status</title>
  </head>
  <body>
    <main>
      <h1>Status</h1>
      <p>Your Rocket server is running!</p>

      <dl>
        <dt>Version</dt>
        <dd>` + version + `</dd>
        <dt>API</dt>
        <dd><a href="/health">/health</a> for connectivity checks, /api/v1 for everything else.</dd>
      </dl>
    </main>
  </body>
</html>
`

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}
}

func handleHealth(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:   "error",
				Database: "unreachable",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
	}
}

func handleSystemStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := SystemStatusResponse{
			Version:  displayVersion(),
			Database: "ok",
			Queue:    "disabled",
		}
		if s.Queue != nil {
			response.Queue = "connected"
		}

		if err := s.Health.CheckConnectivity(); err != nil {
			response.Database = "unreachable"
			respondWithJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		counts, err := s.Stats.EntityCounts()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to collect entity counts")
			return
		}
		response.Counts = counts
		respondWithJSON(w, http.StatusOK, response)
	}
}
