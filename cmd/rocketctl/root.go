package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rocketctl",
	Short: "Rocket server command line interface",
	Long: `rocketctl manages a Rocket server: the resume-builder and
career-coaching backend. It runs the HTTP server and the analysis
worker, manages the database schema, seeds reference data, and drives
the git auto-save automation.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	// A .env file in the working directory supplies DATABASE_URL and
	// friends during development; production sets real env vars.
	_ = godotenv.Load()

	slog.SetDefault(newLogger())

	Execute()
}

// newLogger builds the process-wide logger. ROCKET_LOG_LEVEL=debug
// turns on debug output everywhere, matching the SQL logging gate in
// pkg/db.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("ROCKET_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
