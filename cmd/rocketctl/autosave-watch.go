package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketresume/rocket/pkg/autosave"
)

// autosaveWatchCmd represents the autosave watch command
var autosaveWatchCmd = &cobra.Command{
	Use:   "watch [repo]",
	Short: "Watch a work tree and auto-save on changes",
	Long: `Watch a git work tree and run an auto-save cycle whenever files
change, until interrupted.

Filesystem events are debounced so a burst of writes produces one
commit. The work tree is also saved at a fixed maximum interval, so
changes made while the watcher was blind still get picked up. The
.git directory and the state directory are ignored.

Example:
  rocketctl autosave watch
  rocketctl autosave watch ~/work/notes --debounce 5s --push`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo := "."
		if len(args) > 0 {
			repo = args[0]
		}

		engine, err := buildAutosaveEngine(cmd, repo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Autosave failed: %v\n", err)
			os.Exit(1)
		}

		debounce, _ := cmd.Flags().GetDuration("debounce")
		maxInterval, _ := cmd.Flags().GetDuration("max-interval")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = engine.Watch(ctx, autosave.WatchOptions{
			Debounce:    debounce,
			MaxInterval: maxInterval,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Watch failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nShutting down...")
	},
}

func init() {
	autosaveCmd.AddCommand(autosaveWatchCmd)
	autosaveWatchCmd.Flags().Duration("debounce", 2*time.Second, "quiet period after the last event before saving")
	autosaveWatchCmd.Flags().Duration("max-interval", 5*time.Minute, "save at least this often even without events")
	autosaveWatchCmd.Flags().Int("min-interval", 0, "minimum seconds between runs (default: from configuration)")
	autosaveWatchCmd.Flags().Bool("push", false, "push after committing (default: from configuration)")
	autosaveWatchCmd.Flags().String("remote", "", "git remote to push to (default: from configuration)")
}
