package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketresume/rocket/pkg/model"
)

// errDuplicateKey mimics the driver error for a unique violation.
var errDuplicateKey = errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`)

func TestRegisterEndpoint(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		body := `{"email": "Alice@Example.com", "password": "hunter2secret", "full_name": "Alice"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var user model.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.FullName)
		assert.NotEmpty(t, user.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid email", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		body := `{"email": "not-an-email", "password": "hunter2secret"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		body := `{"email": "bob@example.com", "password": "short"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{not json`))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(errDuplicateKey)
		mock.ExpectRollback()

		body := `{"email": "taken@example.com", "password": "hunter2secret"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "email already registered")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLoginEndpoint(t *testing.T) {
	newUser := func(t *testing.T, password string) *model.User {
		t.Helper()
		user := &model.User{ID: "user-1", Email: "alice@example.com", FullName: "Alice"}
		require.NoError(t, user.SetPassword(password))
		return user
	}

	expectUserByEmail := func(mock sqlmock.Sqlmock, user *model.User) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(user.ID, user.Email, user.PasswordDigest, user.FullName, user.CreatedAt, user.UpdatedAt)
		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WithArgs(user.Email).
			WillReturnRows(rows)
	}

	t.Run("valid credentials", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		user := newUser(t, "hunter2secret")
		expectUserByEmail(mock, user)

		body := `{"email": "alice@example.com", "password": "hunter2secret"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.NotEmpty(t, result.Token)
		assert.False(t, result.ExpiresAt.IsZero())

		// The issued token is good for whoami.
		whoamiReq := httptest.NewRequest("GET", "/api/v1/auth/whoami", nil)
		whoamiReq.Header.Set("Authorization", "Bearer "+result.Token)
		whoamiReq.RemoteAddr = "10.1.2.3:4567"
		whoamiW := httptest.NewRecorder()
		server.Router.ServeHTTP(whoamiW, whoamiReq)

		require.Equal(t, http.StatusOK, whoamiW.Code, whoamiW.Body.String())

		var whoami WhoamiResponse
		require.NoError(t, json.Unmarshal(whoamiW.Body.Bytes(), &whoami))
		assert.Equal(t, user.ID, whoami.UserID)
		assert.Equal(t, user.Email, whoami.Email)
		assert.Equal(t, "10.1.2.3", whoami.ClientIP)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		user := newUser(t, "hunter2secret")
		expectUserByEmail(mock, user)

		body := `{"email": "alice@example.com", "password": "wrong-password"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid credentials")
	})

	t.Run("unknown email", func(t *testing.T) {
		server, mock, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		body := `{"email": "nobody@example.com", "password": "hunter2secret"}`
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("whoami without token", func(t *testing.T) {
		server, _, err := NewMockTestServer()
		require.NoError(t, err)
		RegisterAuthEndpoints(server)

		req := httptest.NewRequest("GET", "/api/v1/auth/whoami", nil)
		w := httptest.NewRecorder()
		server.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
