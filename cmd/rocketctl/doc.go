// Package main implements rocketctl, the Rocket server CLI.
//
// Rocket is a resume-builder and career-coaching backend: users upload
// resumes, score them against job postings, and work through guided
// coaching conversations with a set of personas. The server exposes a
// JSON REST API; rocketctl runs it and everything around it.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: persistence interfaces and GORM implementations
//   - pkg/analysis: resume quality scoring and achievement mining
//   - pkg/match: resume/job match scoring
//   - pkg/persona: coaching persona registry and recommender
//   - pkg/rocket: coaching conversation phase machine
//   - pkg/queue: AMQP publisher/consumer for async analysis
//   - pkg/storage: uploaded-file backends (local disk, S3)
//   - pkg/autosave: git auto-save engine
//   - pkg/model: database models
//   - pkg/config: configuration management
//   - pkg/audit: audit logging
//
// # Quick Start
//
//	# Run database migrations
//	rocketctl db migrate
//
//	# Seed personas, templates and sample job postings
//	rocketctl seed
//
//	# Create a user account
//	rocketctl user create alice@example.com
//
//	# Start the server
//	rocketctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - ROCKET_TOKEN_SECRET: HMAC secret for session tokens
//   - ROCKET_QUEUE_URL: AMQP broker URL (enables the async pipeline)
//   - ROCKET_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
//
// For more information, see https://github.com/rocketresume/rocket
package main
