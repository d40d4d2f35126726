package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssuer(t *testing.T) {
	t.Run("requires a secret", func(t *testing.T) {
		_, err := NewIssuer("", time.Hour)
		assert.Error(t, err)
	})

	t.Run("requires a positive ttl", func(t *testing.T) {
		_, err := NewIssuer("secret", 0)
		assert.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		issuer, err := NewIssuer("secret", time.Hour)
		require.NoError(t, err)
		assert.NotNil(t, issuer)
	})
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	signed, expiresAt, err := issuer.Issue("user-123", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("garbage input", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewIssuer("other-secret", time.Hour)
		require.NoError(t, err)

		signed, _, err := other.Issue("user-123", "alice@example.com")
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now()
		claims := sessionClaims{
			Email: "alice@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuerName,
				Subject:   "user-123",
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		now := time.Now()
		claims := sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Subject:   "user-123",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("missing subject", func(t *testing.T) {
		now := time.Now()
		claims := sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuerName,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("unsigned algorithm", func(t *testing.T) {
		claims := sessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:  issuerName,
				Subject: "user-123",
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(unsigned)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
