package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rocketresume/rocket/pkg/ai"
	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/db"
	"github.com/rocketresume/rocket/pkg/queue"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/endpoints"
	"github.com/rocketresume/rocket/pkg/storage"
	"github.com/rocketresume/rocket/pkg/token"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Rocket application server",
	Long: `Run the Rocket application server

To run the server requires the environment variables ROCKET_TOKEN_SECRET
and DATABASE_URL. ROCKET_QUEUE_URL enables the async analysis pipeline.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if cfg.TokenSecret == "" {
			fmt.Fprintln(os.Stderr, "ROCKET_TOKEN_SECRET environment variable (or token_secret in rocket.yml) is required")
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			slog.Info("running database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to DB: %v\n", err)
			os.Exit(1)
		}

		tokens, err := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to initiate token issuer: %v\n", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(cfg, database, tokens, host, port)

		ctx := context.Background()

		backend, err := storage.FromConfig(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to initiate storage backend: %v\n", err)
			os.Exit(1)
		}
		s.UseStorage(backend)

		if cfg.QueueEnabled() {
			publisher, err := queue.Retry(3, func() (*queue.Publisher, error) {
				return queue.Dial(cfg.QueueURL)
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unable to connect to broker: %v\n", err)
				os.Exit(1)
			}
			defer publisher.Close()
			s.UseQueue(publisher)
			slog.Info("async analysis pipeline enabled")
		}

		if cfg.AIEnabled() {
			provider, err := ai.FromConfig(ctx, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unable to initiate AI provider: %v\n", err)
				os.Exit(1)
			}
			s.UseProvider(provider)
			slog.Info("ai provider enabled", "provider", provider.Name(), "model", cfg.AIModel)
		}

		endpoints.RegisterAll(s)

		slog.Info("running server", "addr", fmt.Sprintf("http://%s:%s", host, port))
		if err := s.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Server exited: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
