package identity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketresume/rocket/pkg/token"
)

func TestFromClaims(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	expires := issued.Add(24 * time.Hour)

	claims := &token.Claims{
		UserID:    "user-123",
		Email:     "alice@example.com",
		IssuedAt:  issued,
		ExpiresAt: expires,
	}

	id := FromClaims(claims)
	assert.Equal(t, "user-123", id.UserID)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, issued, id.IssuedAt)
	assert.Equal(t, expires, id.ExpiresAt)
	assert.Nil(t, id.RemoteIP)
}

func TestIdentity_WithRemoteIP(t *testing.T) {
	id := &Identity{
		UserID: "user-123",
		Email:  "alice@example.com",
	}

	ip := net.ParseIP("192.168.1.100")
	id.WithRemoteIP(ip)

	assert.Equal(t, ip, id.RemoteIP)
}

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	// Initially no identity
	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	// Set identity
	expected := &Identity{
		UserID: "user-123",
		Email:  "alice@example.com",
	}
	ctx = Set(ctx, expected)

	// Get identity
	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, expected.UserID, id.UserID)
	assert.Equal(t, expected.Email, id.Email)
}
