// Package config provides configuration management for Rocket.
//
// This package handles loading and validating Rocket server configuration
// from a YAML config file and ROCKET_* environment variables, tracking the
// source of each attribute so `rocketctl config show` can report where a
// value came from.
//
// # Configuration Sources
//
// Configuration is loaded, in order of increasing precedence, from:
//
//   - Built-in defaults
//   - rocket.yml under ROCKET_CONFIG_PATH (default /etc/rocket/config)
//   - ROCKET_* environment variables
//
// DATABASE_URL stays a bare environment variable handled by pkg/db; it is
// deliberately not part of this file-backed configuration.
//
// # Key Configuration Options
//
//   - ROCKET_ALLOWED_ORIGINS: CORS origin allowlist
//   - ROCKET_TOKEN_SECRET: session token signing secret (required)
//   - ROCKET_STORAGE_BACKEND: resume file storage ("local" or "s3")
//   - ROCKET_QUEUE_URL: AMQP broker for the async analysis pipeline
//   - ROCKET_AI_PROVIDER: optional LLM provider ("none", "gemini", "openai")
package config
