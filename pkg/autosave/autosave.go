package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrLocked means another run holds the lock right now.
var ErrLocked = errors.New("another autosave run is in progress")

// ErrSkipped means the minimum interval since the last run has not
// passed yet.
var ErrSkipped = errors.New("autosave skipped: minimum interval not reached")

// Options configure an Engine.
type Options struct {
	// RepoDir is the git work tree to save. Required.
	RepoDir string

	// StateDir holds the lock and state files. Defaults to
	// <RepoDir>/.rocket.
	StateDir string

	// MinInterval is the shortest allowed gap between runs. Zero
	// disables the gate.
	MinInterval time.Duration

	// Push pushes to Remote after each commit.
	Push   bool
	Remote string

	// Message overrides the generated commit message.
	Message string

	Logger *slog.Logger
}

// Engine performs autosave runs against one repository.
type Engine struct {
	repoDir     string
	stateDir    string
	minInterval time.Duration
	push        bool
	remote      string
	message     string
	logger      *slog.Logger

	now func() time.Time
}

// New validates options and builds an engine. The state directory is
// created eagerly so the first lock acquisition cannot race its parent.
func New(opts Options) (*Engine, error) {
	if opts.RepoDir == "" {
		return nil, fmt.Errorf("autosave: RepoDir is required")
	}
	if _, err := os.Stat(filepath.Join(opts.RepoDir, ".git")); err != nil {
		return nil, fmt.Errorf("autosave: %s is not a git repository", opts.RepoDir)
	}

	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = filepath.Join(opts.RepoDir, ".rocket")
	}
	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		return nil, fmt.Errorf("autosave: creating state dir: %w", err)
	}

	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		repoDir:     opts.RepoDir,
		stateDir:    stateDir,
		minInterval: opts.MinInterval,
		push:        opts.Push,
		remote:      remote,
		message:     opts.Message,
		logger:      logger,
		now:         time.Now,
	}, nil
}

// Run performs one autosave cycle and returns the state it recorded.
// ErrLocked and ErrSkipped are expected outcomes, not failures; the
// state file is left untouched for ErrLocked and ErrSkipped.
func (e *Engine) Run(ctx context.Context) (*State, error) {
	unlock, err := acquireLock(filepath.Join(e.stateDir, "autosave.lock"))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if e.minInterval > 0 {
		if prev := e.loadState(); prev != nil {
			if since := e.now().Sub(prev.LastRun); since < e.minInterval {
				return nil, fmt.Errorf("%w (ran %s ago)", ErrSkipped, since.Round(time.Second))
			}
		}
	}

	state := &State{LastRun: e.now().UTC()}
	if err := e.save(ctx, state); err != nil {
		state.Error = err.Error()
	}

	if werr := e.writeState(state); werr != nil {
		return state, fmt.Errorf("writing autosave state: %w", werr)
	}
	if state.Error != "" {
		return state, fmt.Errorf("autosave run failed: %s", state.Error)
	}
	return state, nil
}

// save does the git work for one run, filling state as it goes.
func (e *Engine) save(ctx context.Context, state *State) error {
	changed, err := e.changedFiles(ctx)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		state.Clean = true
		e.logger.Debug("autosave: work tree clean", "repo", e.repoDir)
		return nil
	}

	if err := e.git(ctx, "add", "-A"); err != nil {
		return err
	}

	msg := e.message
	if msg == "" {
		msg = fmt.Sprintf("autosave: %d files at %s", len(changed), state.LastRun.Format(time.RFC3339))
	}
	if err := e.git(ctx,
		"-c", "user.name=rocket-autosave",
		"-c", "user.email=autosave@rocket.local",
		"commit", "-m", msg); err != nil {
		return err
	}

	commit, err := e.gitOutput(ctx, "rev-parse", "HEAD")
	if err != nil {
		return err
	}
	state.LastCommit = strings.TrimSpace(commit)
	state.FilesCommitted = len(changed)
	e.logger.Info("autosave: committed",
		"repo", e.repoDir, "commit", state.LastCommit, "files", state.FilesCommitted)

	if e.push {
		if err := e.git(ctx, "push", e.remote, "HEAD"); err != nil {
			return fmt.Errorf("pushing to %s: %w", e.remote, err)
		}
		e.logger.Info("autosave: pushed", "remote", e.remote)
	}
	return nil
}
