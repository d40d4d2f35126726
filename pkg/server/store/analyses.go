package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrAnalysisNotFound is returned when no analysis matches
var ErrAnalysisNotFound = errors.New("analysis not found")

// AnalysesStore abstracts persisted engine runs.
type AnalysesStore interface {
	// CreateAnalysis inserts one engine run.
	CreateAnalysis(analysis *model.Analysis) error

	// LatestAnalysis retrieves the most recent analysis of the given
	// kind for a resume. Returns ErrAnalysisNotFound when none exists.
	LatestAnalysis(resumeID, kind string) (*model.Analysis, error)

	// ListAnalyses returns all analyses for a resume, newest first.
	ListAnalyses(resumeID string) ([]model.Analysis, error)
}
