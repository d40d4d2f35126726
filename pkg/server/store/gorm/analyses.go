package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure AnalysesStore implements store.AnalysesStore
var _ store.AnalysesStore = (*AnalysesStore)(nil)

// AnalysesStore implements store.AnalysesStore using GORM
type AnalysesStore struct {
	db *gorm.DB
}

// NewAnalysesStore creates a new AnalysesStore
func NewAnalysesStore(db *gorm.DB) *AnalysesStore {
	return &AnalysesStore{db: db}
}

// CreateAnalysis inserts one engine run.
func (s *AnalysesStore) CreateAnalysis(analysis *model.Analysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.NewString()
	}
	return s.db.Create(analysis).Error
}

// LatestAnalysis retrieves the most recent analysis of a kind for a resume.
func (s *AnalysesStore) LatestAnalysis(resumeID, kind string) (*model.Analysis, error) {
	var analysis model.Analysis
	tx := s.db.Where("resume_id = ? AND kind = ?", resumeID, kind).
		Order("created_at desc").
		First(&analysis)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrAnalysisNotFound
		}
		return nil, tx.Error
	}
	return &analysis, nil
}

// ListAnalyses returns all analyses for a resume, newest first.
func (s *AnalysesStore) ListAnalyses(resumeID string) ([]model.Analysis, error) {
	var analyses []model.Analysis
	tx := s.db.Where("resume_id = ?", resumeID).Order("created_at desc").Find(&analyses)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return analyses, nil
}
