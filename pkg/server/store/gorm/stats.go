package gorm

import (
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure StatsStore implements store.StatsStore
var _ store.StatsStore = (*StatsStore)(nil)

// StatsStore implements store.StatsStore using GORM
type StatsStore struct {
	db *gorm.DB
}

// NewStatsStore creates a new StatsStore
func NewStatsStore(db *gorm.DB) *StatsStore {
	return &StatsStore{db: db}
}

// EntityCounts counts the rows in each primary table.
func (s *StatsStore) EntityCounts() (*store.Counts, error) {
	var counts store.Counts

	tables := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.User{}, &counts.Users},
		{&model.Resume{}, &counts.Resumes},
		{&model.JobPosting{}, &counts.Jobs},
		{&model.ConversationSession{}, &counts.Sessions},
		{&model.Analysis{}, &counts.Analyses},
	}

	for _, t := range tables {
		if err := s.db.Model(t.model).Count(t.dest).Error; err != nil {
			return nil, err
		}
	}
	return &counts, nil
}
