package autosave

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const stateFileName = "autosave.json"

// State is the recorded outcome of the most recent run.
type State struct {
	LastRun        time.Time `json:"last_run"`
	LastCommit     string    `json:"last_commit,omitempty"`
	FilesCommitted int       `json:"files_committed"`
	Clean          bool      `json:"clean"`
	Error          string    `json:"error,omitempty"`
}

func (e *Engine) statePath() string {
	return filepath.Join(e.stateDir, stateFileName)
}

// loadState reads the previous run's state. Missing or corrupt files
// mean "no previous run".
func (e *Engine) loadState() *State {
	raw, err := os.ReadFile(e.statePath())
	if err != nil {
		return nil
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil
	}
	return &st
}

// writeState replaces the state file atomically: readers see either the
// old state or the new one, never a torn write.
func (e *Engine) writeState(st *State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(e.stateDir, ".state-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), e.statePath())
}

// LoadState reads the state file under stateDir, for callers that want
// the last outcome without constructing an engine.
func LoadState(stateDir string) (*State, error) {
	raw, err := os.ReadFile(filepath.Join(stateDir, stateFileName))
	if err != nil {
		return nil, err
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
