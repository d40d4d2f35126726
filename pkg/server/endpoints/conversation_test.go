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

	"github.com/rocketresume/rocket/pkg/rocket"
)

func TestStartConversationEndpoint(t *testing.T) {
	t.Run("explicit persona", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterConversationEndpoints(server)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "conversation_sessions"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "conversation_messages"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		body := `{"persona_id": "story-coach"}`
		req := httptest.NewRequest("POST", "/api/v1/conversation/start", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var result StartSessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.NotNil(t, result.Session)
		assert.Equal(t, "story-coach", result.Session.PersonaID)
		assert.Equal(t, string(rocket.PhaseIntro), result.Session.Phase)
		assert.Equal(t, "active", result.Session.Status)
		assert.Contains(t, result.Message, "Elena")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("auto-selects persona from goal", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterConversationEndpoints(server)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "conversation_sessions"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "conversation_messages"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		body := `{"goal": "salary_negotiation"}`
		req := httptest.NewRequest("POST", "/api/v1/conversation/start", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var result StartSessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "comp-strategist", result.Session.PersonaID)
	})

	t.Run("unknown persona", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterConversationEndpoints(server)

		body := `{"persona_id": "life-coach"}`
		req := httptest.NewRequest("POST", "/api/v1/conversation/start", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestProcessConversationEndpoint(t *testing.T) {
	newStateMetadata := func(t *testing.T) []byte {
		t.Helper()
		metadata, err := rocket.NewState().Encode()
		require.NoError(t, err)
		return metadata
	}

	t.Run("advances out of intro", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterConversationEndpoints(server)

		now := time.Now()
		sessionRows := sqlmock.NewRows(sessionColumns).
			AddRow("sess-1", "user-1", "career-strategist", "intro", "active", newStateMetadata(t), now, now)
		mock.ExpectQuery(`SELECT .* FROM "conversation_sessions"`).
			WithArgs("sess-1", "user-1").
			WillReturnRows(sessionRows)

		// user message, session update, coach reply
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "conversation_messages"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "conversation_sessions" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "conversation_messages"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		message := "I am a backend engineer with eight years of experience and I want to move into a staff role at a product company."
		body, err := json.Marshal(map[string]string{"session_id": "sess-1", "message": message})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/conversation/process", strings.NewReader(string(body)))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result ProcessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Advanced)
		assert.Equal(t, string(rocket.PhaseStoryDiscovery), result.Phase)
		assert.False(t, result.Completed)
		assert.NotEmpty(t, result.Reply)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing fields", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterConversationEndpoints(server)

		req := httptest.NewRequest("POST", "/api/v1/conversation/process", strings.NewReader(`{"session_id": "sess-1"}`))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("session not found", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterConversationEndpoints(server)

		mock.ExpectQuery(`SELECT .* FROM "conversation_sessions"`).
			WithArgs("sess-9", "user-1").
			WillReturnRows(sqlmock.NewRows(sessionColumns))

		body := `{"session_id": "sess-9", "message": "hello"}`
		req := httptest.NewRequest("POST", "/api/v1/conversation/process", strings.NewReader(body))
		req.Header.Set("Authorization", bearerToken(t, server))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetConversationEndpoint(t *testing.T) {
	server, mock, err := NewMockTestServer()
	require.NoError(t, err)
	RegisterConversationEndpoints(server)

	now := time.Now()
	metadata, err := rocket.NewState().Encode()
	require.NoError(t, err)

	sessionRows := sqlmock.NewRows(sessionColumns).
		AddRow("sess-1", "user-1", "career-strategist", "intro", "active", metadata, now, now)
	mock.ExpectQuery(`SELECT .* FROM "conversation_sessions"`).
		WithArgs("sess-1", "user-1").
		WillReturnRows(sessionRows)

	messageColumns := []string{"id", "session_id", "role", "content", "phase", "metadata", "created_at"}
	messageRows := sqlmock.NewRows(messageColumns).
		AddRow("msg-1", "sess-1", "coach", "Hi, I'm Alexis.", "intro", []byte(nil), now).
		AddRow("msg-2", "sess-1", "user", "Hello!", "intro", []byte(nil), now)
	mock.ExpectQuery(`SELECT .* FROM "conversation_messages"`).
		WithArgs("sess-1").
		WillReturnRows(messageRows)

	req := httptest.NewRequest("GET", "/api/v1/conversation/sess-1", nil)
	req.Header.Set("Authorization", bearerToken(t, server))
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Session)
	assert.Equal(t, "sess-1", result.Session.ID)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "coach", result.Messages[0].Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}
