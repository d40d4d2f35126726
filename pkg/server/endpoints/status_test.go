package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStatus(t *testing.T) {
	t.Run("returns HTML status page", func(t *testing.T) {
		handler := handleStatus()

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Your Rocket server is running!")
	})

	t.Run("returns JSON when Accept header is application/json", func(t *testing.T) {
		handler := handleStatus()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("returns JSON when format=json", func(t *testing.T) {
		handler := handleStatus()

		req := httptest.NewRequest("GET", "/?format=json", nil)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "0.1.0", result["version"])
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("reports ok when the database responds", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterStatusEndpoints(server)

		mock.ExpectExec(`SELECT 1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var result HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "ok", result.Status)
		assert.Equal(t, "ok", result.Database)
	})

	t.Run("reports 503 when the database is unreachable", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterStatusEndpoints(server)

		mock.ExpectExec(`SELECT 1`).
			WillReturnError(errors.New("connection refused"))

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var result HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "error", result.Status)
		assert.Equal(t, "unreachable", result.Database)
	})
}

func TestSystemStatusEndpoint(t *testing.T) {
	t.Run("reports entity counts", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterStatusEndpoints(server)

		mock.ExpectExec(`SELECT 1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		for _, table := range []string{"users", "resumes", "job_postings", "conversation_sessions", "analyses"} {
			mock.ExpectQuery(`SELECT count\(.\) FROM "` + table + `"`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		}

		req := httptest.NewRequest("GET", "/api/v1/system/status", nil)
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result SystemStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "0.1.0", result.Version)
		assert.Equal(t, "ok", result.Database)
		assert.Equal(t, "disabled", result.Queue)
		require.NotNil(t, result.Counts)
		assert.Equal(t, int64(3), result.Counts.Users)
		assert.Equal(t, int64(3), result.Counts.Analyses)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires a token", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterStatusEndpoints(server)

		req := httptest.NewRequest("GET", "/api/v1/system/status", nil)
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
