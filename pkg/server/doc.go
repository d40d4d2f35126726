// Package server provides the HTTP server for the Rocket API.
//
// This package implements the core HTTP server that handles all Rocket REST API
// requests. It uses gorilla/mux for routing and provides middleware for
// authentication and request handling.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, db, tokens, "0.0.0.0", "8000")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Config: runtime configuration
//   - Tokens: session token issuer and verifier
//   - Stores: one interface per table (users, resumes, jobs, ...)
//   - Storage: the uploaded-file backend (local disk or S3)
//   - Queue: the async analysis publisher, when a broker is configured
//   - Matcher and Coach: the scoring and conversation engines
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers all Rocket API endpoints including:
//
//   - /api/v1/auth/register - account creation
//   - /api/v1/auth/login - session token issuance
//   - /api/v1/resumes - resume upload, listing and analysis
//   - /api/v1/jobs - job postings and resume matching
//   - /api/v1/templates - resume template catalog
//   - /api/v1/personas - coaching persona catalog and recommendation
//   - /api/v1/conversation - ROCKET coaching sessions
//   - /health - liveness and database connectivity
package server
