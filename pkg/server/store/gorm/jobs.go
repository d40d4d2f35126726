package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure JobsStore implements store.JobsStore
var _ store.JobsStore = (*JobsStore)(nil)

// JobsStore implements store.JobsStore using GORM
type JobsStore struct {
	db *gorm.DB
}

// NewJobsStore creates a new JobsStore
func NewJobsStore(db *gorm.DB) *JobsStore {
	return &JobsStore{db: db}
}

// CreateJob inserts a new posting.
func (s *JobsStore) CreateJob(job *model.JobPosting) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return s.db.Create(job).Error
}

// FetchJob retrieves a posting visible to the user.
func (s *JobsStore) FetchJob(userID, id string) (*model.JobPosting, error) {
	var job model.JobPosting
	tx := s.db.Where("id = ? AND (user_id = ? OR user_id IS NULL)", id, userID).First(&job)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrJobNotFound
		}
		return nil, tx.Error
	}
	return &job, nil
}

// ListJobs pages through postings visible to the user, newest first.
func (s *JobsStore) ListJobs(userID string, limit, offset int) ([]model.JobPosting, int64, error) {
	where := ` WHERE user_id = ? OR user_id IS NULL`
	args := []interface{}{userID}

	var total int64
	if err := s.db.Raw(`SELECT count(*) FROM job_postings`+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM job_postings` + where + ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if offset > 0 {
		query += ` OFFSET ?`
		args = append(args, offset)
	}

	var jobs []model.JobPosting
	if err := s.db.Raw(query, args...).Scan(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// DeleteJob removes one of the user's own postings. Global postings
// have a NULL user_id and never match.
func (s *JobsStore) DeleteJob(userID, id string) error {
	tx := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.JobPosting{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrJobNotFound
	}
	return nil
}
