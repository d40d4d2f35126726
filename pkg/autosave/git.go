package autosave

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// git runs a git command in the repo, discarding stdout.
func (e *Engine) git(ctx context.Context, args ...string) error {
	_, err := e.gitOutput(ctx, args...)
	return err
}

// gitOutput runs a git command in the repo and returns its stdout.
// Errors carry stderr, which is where git explains itself.
func (e *Engine) gitOutput(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.repoDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], detail)
	}
	return stdout.String(), nil
}

// changedFiles returns the paths `git status --porcelain` reports.
func (e *Engine) changedFiles(ctx context.Context) ([]string, error) {
	out, err := e.gitOutput(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// parsePorcelain extracts paths from porcelain v1 output. Lines read
// "XY <path>", or "XY <old> -> <new>" for renames.
func parsePorcelain(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		files = append(files, strings.Trim(path, `"`))
	}
	return files
}
