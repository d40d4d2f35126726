package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/db"
	"github.com/rocketresume/rocket/pkg/queue"
	"github.com/rocketresume/rocket/pkg/server/store"
	gormstore "github.com/rocketresume/rocket/pkg/server/store/gorm"
)

// systemStatus is the JSON snapshot the status command produces.
type systemStatus struct {
	Version     string        `json:"version"`
	GeneratedAt time.Time     `json:"generated_at"`
	Database    string        `json:"database"`
	Queue       string        `json:"queue"`
	Counts      *store.Counts `json:"counts,omitempty"`
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Write a JSON snapshot of system health",
	Long: `Write a JSON snapshot of system health: database connectivity,
entity counts, queue reachability, and the running version.

The snapshot goes to STDOUT by default; --output writes it to a file
for dashboards and cron jobs to pick up.

Example:
  rocketctl status
  rocketctl status --output /var/lib/rocket/status.json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := writeStatus(output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write status: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("output", "o", "", "file to write the snapshot to (default: stdout)")
}

func collectStatus() *systemStatus {
	status := &systemStatus{
		Version:     displayVersion(),
		GeneratedAt: time.Now().UTC(),
		Database:    "unreachable",
		Queue:       "disabled",
	}

	if database, err := db.Connect(db.Config{}); err == nil {
		if err := gormstore.NewHealthStore(database).CheckConnectivity(); err == nil {
			status.Database = "ok"
			if counts, err := gormstore.NewStatsStore(database).EntityCounts(); err == nil {
				status.Counts = counts
			}
		}
	}

	cfg, err := config.Load()
	if err == nil && cfg.QueueEnabled() {
		status.Queue = "unreachable"
		if publisher, err := queue.Dial(cfg.QueueURL); err == nil {
			status.Queue = "connected"
			_ = publisher.Close()
		}
	}

	return status
}

func writeStatus(output string) error {
	data, err := json.MarshalIndent(collectStatus(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Status written to %s\n", output)
	return nil
}

func displayVersion() string {
	version := os.Getenv("ROCKET_VERSION_DISPLAY")
	if version == "" {
		version = "0.1.0"
	}
	return version
}
