package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rocketresume/rocket/pkg/ai"
	"github.com/rocketresume/rocket/pkg/analysis"
	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/db"
	"github.com/rocketresume/rocket/pkg/match"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/queue"
	"github.com/rocketresume/rocket/pkg/server/store"
	gormstore "github.com/rocketresume/rocket/pkg/server/store/gorm"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the async analysis worker",
	Long: `Run the async analysis worker.

The worker consumes analysis requests from the AMQP queue that the
server publishes on resume upload, runs the requested engine, persists
the result, and publishes progress updates to the updates exchange.

Requires DATABASE_URL and ROCKET_QUEUE_URL.

Example:
  rocketctl worker
  rocketctl worker --workers 8`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if !cfg.QueueEnabled() {
			fmt.Fprintln(os.Stderr, "ROCKET_QUEUE_URL environment variable (or queue_url in rocket.yml) is required")
			os.Exit(1)
		}

		workers, _ := cmd.Flags().GetInt("workers")
		if workers <= 0 {
			workers = cfg.QueueWorkers
		}

		if err := runWorker(cfg, workers); err != nil {
			fmt.Fprintf(os.Stderr, "Worker exited: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().IntP("workers", "w", 0, "worker pool size (default: queue_workers from configuration)")
}

func runWorker(cfg *config.RocketConfig, workers int) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	logger := slog.Default()

	matcher := match.New()
	if cfg.AIEnabled() {
		provider, err := ai.FromConfig(context.Background(), cfg)
		if err != nil {
			return err
		}
		matcher = match.New(match.WithProvider(provider))
		logger.Info("ai provider enabled", "provider", provider.Name(), "model", cfg.AIModel)
	}

	publisher, err := queue.Retry(3, func() (*queue.Publisher, error) {
		return queue.Dial(cfg.QueueURL)
	})
	if err != nil {
		return fmt.Errorf("connecting to broker: %w", err)
	}
	defer publisher.Close()

	w := &worker{
		resumes:   gormstore.NewResumesStore(database),
		jobs:      gormstore.NewJobsStore(database),
		analyses:  gormstore.NewAnalysesStore(database),
		matcher:   matcher,
		publisher: publisher,
		logger:    logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := queue.NewConsumer(cfg.QueueURL, workers, logger)
	logger.Info("worker consuming", "queue", queue.RequestQueue, "workers", workers)

	if err := consumer.Run(ctx, w.handle); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("worker stopped")
	return nil
}

// worker holds the stores and engines one analysis run needs.
type worker struct {
	resumes   store.ResumesStore
	jobs      store.JobsStore
	analyses  store.AnalysesStore
	matcher   *match.Engine
	publisher *queue.Publisher
	logger    *slog.Logger
}

// handle processes one analysis request end to end.
func (w *worker) handle(ctx context.Context, req queue.AnalysisRequest) error {
	// The fetch retries because the row may land a beat after the
	// message when the server's transaction commits slowly.
	resume, err := queue.Retry(3, func() (*model.Resume, error) {
		return w.resumes.FetchResumeByID(req.ResumeID)
	})
	if err != nil {
		return fmt.Errorf("fetching resume %s: %w", req.ResumeID, err)
	}

	w.publishUpdate(queue.Update{
		ResumeID: resume.ID,
		Kind:     req.Kind,
		Status:   queue.StatusProcessing,
		Message:  "analysis started",
	})

	switch req.Kind {
	case model.AnalysisKindQuality:
		err = w.runQuality(resume)
	case model.AnalysisKindMatch:
		err = w.runMatch(ctx, resume, req.JobID)
	default:
		err = fmt.Errorf("unknown analysis kind: %s", req.Kind)
	}

	if err != nil {
		// Only the quality pipeline owns the resume status lifecycle;
		// a failed match leaves the resume as it was.
		if req.Kind == model.AnalysisKindQuality {
			_ = w.resumes.UpdateResumeStatus(resume.ID, model.ResumeStatusFailed)
		}
		w.publishUpdate(queue.Update{
			ResumeID: resume.ID,
			Kind:     req.Kind,
			Status:   queue.StatusFailed,
			Message:  err.Error(),
		})
		return err
	}

	w.publishUpdate(queue.Update{
		ResumeID: resume.ID,
		Kind:     req.Kind,
		Status:   queue.StatusCompleted,
		Message:  "analysis complete",
	})
	return nil
}

func (w *worker) runQuality(resume *model.Resume) error {
	if err := w.resumes.UpdateResumeStatus(resume.ID, model.ResumeStatusProcessing); err != nil {
		return fmt.Errorf("marking resume processing: %w", err)
	}

	report := analysis.AnalyzeQuality(resume.ContentText)
	breakdown, err := json.Marshal(report.Components)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}
	suggestions, err := json.Marshal(report.Suggestions)
	if err != nil {
		return fmt.Errorf("encoding suggestions: %w", err)
	}

	record := &model.Analysis{
		ResumeID:     resume.ID,
		Kind:         model.AnalysisKindQuality,
		OverallScore: report.OverallScore,
		Breakdown:    breakdown,
		Suggestions:  suggestions,
		Engine:       report.Engine,
	}
	if err := w.analyses.CreateAnalysis(record); err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}

	if err := w.resumes.UpdateResumeStatus(resume.ID, model.ResumeStatusAnalyzed); err != nil {
		return fmt.Errorf("marking resume analyzed: %w", err)
	}

	w.logger.Info("quality analysis complete",
		"resume_id", resume.ID, "score", report.OverallScore)
	return nil
}

func (w *worker) runMatch(ctx context.Context, resume *model.Resume, jobID string) error {
	if jobID == "" {
		return errors.New("match request without job_id")
	}
	job, err := w.jobs.FetchJob(resume.UserID, jobID)
	if err != nil {
		return fmt.Errorf("fetching job posting %s: %w", jobID, err)
	}

	result := w.matcher.Match(ctx, resume.ContentText, job)
	breakdown, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}
	suggestions, err := json.Marshal([]string{result.Recommendation})
	if err != nil {
		return fmt.Errorf("encoding suggestions: %w", err)
	}

	record := &model.Analysis{
		ResumeID:     resume.ID,
		JobID:        &job.ID,
		Kind:         model.AnalysisKindMatch,
		OverallScore: result.Score,
		Breakdown:    breakdown,
		Suggestions:  suggestions,
		Engine:       result.Engine,
	}
	if err := w.analyses.CreateAnalysis(record); err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}

	w.logger.Info("match analysis complete",
		"resume_id", resume.ID, "job_id", job.ID, "score", result.Score)
	return nil
}

// publishUpdate emits a progress event. Updates are advisory; a broker
// hiccup must not fail the analysis itself.
func (w *worker) publishUpdate(update queue.Update) {
	if err := w.publisher.PublishUpdate(update); err != nil {
		w.logger.Warn("failed to publish update",
			"resume_id", update.ResumeID, "status", update.Status, "error", err)
	}
}
