package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketresume/rocket/pkg/model"
)

const sampleJobDescription = `We are hiring a senior backend engineer.
Required skills: Go, PostgreSQL and RabbitMQ. Experience with AWS is a plus.
You will lead the payments platform team.`

func TestCreateJobEndpoint(t *testing.T) {
	t.Run("valid posting", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterJobsEndpoints(server)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "job_postings"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		body := `{
			"title": "Senior Backend Engineer",
			"company": "Acme",
			"description": "Build Go services",
			"skills": ["go", "postgresql"],
			"seniority": "Senior"
		}`
		req := httptest.NewRequest("POST", "/api/v1/jobs", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var job model.JobPosting
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
		assert.NotEmpty(t, job.ID)
		require.NotNil(t, job.UserID)
		assert.Equal(t, "user-1", *job.UserID)
		assert.Equal(t, "senior", job.Seniority)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing title", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterJobsEndpoints(server)

		body := `{"description": "Build Go services"}`
		req := httptest.NewRequest("POST", "/api/v1/jobs", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestListJobsEndpoint(t *testing.T) {
	server, mock, err := NewMockTestServer()
	require.NoError(t, err)
	RegisterJobsEndpoints(server)

	now := time.Now()
	mock.ExpectQuery(`SELECT count\(\*\) FROM job_postings`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM job_postings`).
		WithArgs("user-1", 100).
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow("job-1", nil, "Backend Engineer", "Acme", "Remote", sampleJobDescription,
				[]byte(`["go"]`), "senior", "", now, now))

	req := httptest.NewRequest("GET", "/api/v1/jobs", nil)
	req.Header.Set("Authorization", bearerToken(t, server))
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.Count)
	require.Len(t, result.Jobs, 1)
	// Seeded global postings carry no owner.
	assert.Nil(t, result.Jobs[0].UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJobEndpoint(t *testing.T) {
	t.Run("cannot delete global posting", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterJobsEndpoints(server)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "job_postings"`).
			WithArgs("job-global", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		req := httptest.NewRequest("DELETE", "/api/v1/jobs/job-global", nil)
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMatchJobEndpoint(t *testing.T) {
	t.Run("scores resume against posting", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterJobsEndpoints(server)

		now := time.Now()
		jobRows := sqlmock.NewRows(jobColumns).
			AddRow("job-1", nil, "Backend Engineer", "Acme", "Remote", sampleJobDescription,
				[]byte(`["go", "postgresql", "rabbitmq", "kubernetes"]`), "senior", "", now, now)
		mock.ExpectQuery(`SELECT .* FROM "job_postings"`).
			WithArgs("job-1", "user-1").
			WillReturnRows(jobRows)

		resumeRows := sqlmock.NewRows(resumeColumns).
			AddRow("res-1", "user-1", "First", "first.txt", "text/plain", "", sampleResumeText, 40, "analyzed", []byte(nil), now, now)
		mock.ExpectQuery(`SELECT .* FROM "resumes"`).
			WithArgs("res-1", "user-1").
			WillReturnRows(resumeRows)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "analyses"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		body := `{"resume_id": "res-1"}`
		req := httptest.NewRequest("POST", "/api/v1/jobs/job-1/match", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var record model.Analysis
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
		assert.Equal(t, model.AnalysisKindMatch, record.Kind)
		require.NotNil(t, record.JobID)
		assert.Equal(t, "job-1", *record.JobID)
		assert.Greater(t, record.OverallScore, 0)

		// The breakdown carries the full match result.
		var breakdown map[string]interface{}
		require.NoError(t, json.Unmarshal(record.Breakdown, &breakdown))
		assert.Contains(t, breakdown, "matched_skills")
		assert.Contains(t, breakdown, "missing_skills")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing resume_id", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterJobsEndpoints(server)

		req := httptest.NewRequest("POST", "/api/v1/jobs/job-1/match", strings.NewReader(`{}`))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("job not visible", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterJobsEndpoints(server)

		mock.ExpectQuery(`SELECT .* FROM "job_postings"`).
			WithArgs("job-9", "user-1").
			WillReturnRows(sqlmock.NewRows(jobColumns))

		body := `{"resume_id": "res-1"}`
		req := httptest.NewRequest("POST", "/api/v1/jobs/job-9/match", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
