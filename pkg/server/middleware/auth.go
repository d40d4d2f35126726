package middleware

import (
	"net"
	"net/http"
	"regexp"

	"github.com/rocketresume/rocket/pkg/identity"
	"github.com/rocketresume/rocket/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^Bearer (.+)$`)

// TokenAuthenticator is middleware that validates session tokens
type TokenAuthenticator struct {
	Tokens *token.Issuer
}

// NewTokenAuthenticator creates a new session token authenticator middleware
func NewTokenAuthenticator(tokens *token.Issuer) *TokenAuthenticator {
	return &TokenAuthenticator{Tokens: tokens}
}

// ClientIP extracts the client address from a request
func ClientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

// Middleware returns an HTTP middleware that validates session tokens
// and stores the resulting identity on the request context
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		matches := bearerRegex.FindStringSubmatch(authHeader)
		if len(matches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := a.Tokens.Verify(matches[1])
		if err != nil {
			if err == token.ErrTokenExpired {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Token expired"))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid token"))
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(ClientIP(r))
		r = r.WithContext(identity.Set(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}
