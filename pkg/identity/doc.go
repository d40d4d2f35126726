// Package identity provides authenticated identity management for Rocket requests.
//
// This package separates the concept of an authenticated identity from the
// raw token parsing. An Identity combines session token claims (user ID,
// email) with request-specific context (remote IP).
//
// # Basic Usage
//
//	// Create identity from verified token claims
//	id := identity.FromClaims(claims)
//
//	// Add request context
//	id.WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// # Identity vs Token
//
// The token package handles signing and verifying the raw session token.
// The identity package builds on that to provide the per-request view the
// endpoints consume: who the caller is, and where the request came from.
package identity
