package endpoints

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rocketresume/rocket/pkg/audit"
	"github.com/rocketresume/rocket/pkg/identity"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/middleware"
	"github.com/rocketresume/rocket/pkg/server/store"
	"github.com/rocketresume/rocket/pkg/token"
)

// minPasswordLength guards against trivially weak credentials
const minPasswordLength = 8

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the payload returned by /auth/login
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// WhoamiResponse is the payload returned by /auth/whoami
type WhoamiResponse struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	ClientIP      string `json:"client_ip"`
	TokenIssuedAt int64  `json:"token_iat"`
}

// RegisterAuthEndpoints registers the account and session endpoints
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/v1/auth/register", handleRegister(s.Users)).Methods("POST")
	s.Router.HandleFunc("/api/v1/auth/login", handleLogin(s.Users, s.Tokens)).Methods("POST")

	whoamiRouter := s.Router.PathPrefix("/api/v1/auth/whoami").Subrouter()
	whoamiRouter.Use(middleware.NewTokenAuthenticator(s.Tokens).Middleware)
	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleRegister(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || !strings.Contains(email, "@") {
			respondWithError(w, http.StatusUnprocessableEntity, "a valid email is required")
			return
		}
		if len(req.Password) < minPasswordLength {
			respondWithError(w, http.StatusUnprocessableEntity, "password must be at least 8 characters")
			return
		}

		user := &model.User{
			Email:    email,
			FullName: strings.TrimSpace(req.FullName),
		}
		if err := user.SetPassword(req.Password); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to process password")
			return
		}

		if err := users.CreateUser(user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				audit.Log(audit.RegisterEvent{
					Email:        email,
					IP:           clientIP(r),
					Success:      false,
					ErrorMessage: "email already registered",
				})
				respondWithError(w, http.StatusUnprocessableEntity, "email already registered")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to create account")
			return
		}

		audit.Log(audit.RegisterEvent{
			Email:   email,
			UserID:  user.ID,
			IP:      clientIP(r),
			Success: true,
		})
		respondWithJSON(w, http.StatusCreated, user)
	}
}

func handleLogin(users store.UsersStore, tokens *token.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := users.FetchUserByEmail(email)
		if err != nil || !user.CheckPassword(req.Password) {
			audit.Log(audit.AuthenticateEvent{
				Email:        email,
				IP:           clientIP(r),
				Success:      false,
				ErrorMessage: "invalid credentials",
			})
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		signed, expiresAt, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email:   user.Email,
			UserID:  user.ID,
			IP:      clientIP(r),
			Success: true,
		})
		respondWithJSON(w, http.StatusOK, LoginResponse{Token: signed, ExpiresAt: expiresAt})
	}
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "unable to determine identity")
			return
		}

		response := WhoamiResponse{
			UserID:        id.UserID,
			Email:         id.Email,
			TokenIssuedAt: id.IssuedAt.Unix(),
		}
		if id.RemoteIP != nil {
			response.ClientIP = id.RemoteIP.String()
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}
