package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure ResumesStore implements store.ResumesStore
var _ store.ResumesStore = (*ResumesStore)(nil)

// ResumesStore implements store.ResumesStore using GORM
type ResumesStore struct {
	db *gorm.DB
}

// NewResumesStore creates a new ResumesStore
func NewResumesStore(db *gorm.DB) *ResumesStore {
	return &ResumesStore{db: db}
}

// CreateResume inserts a new resume row.
func (s *ResumesStore) CreateResume(resume *model.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	return s.db.Create(resume).Error
}

// FetchResume retrieves one of the user's resumes.
func (s *ResumesStore) FetchResume(userID, id string) (*model.Resume, error) {
	var resume model.Resume
	tx := s.db.Where("id = ? AND user_id = ?", id, userID).First(&resume)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrResumeNotFound
		}
		return nil, tx.Error
	}
	return &resume, nil
}

// FetchResumeByID retrieves a resume without owner scoping.
func (s *ResumesStore) FetchResumeByID(id string) (*model.Resume, error) {
	var resume model.Resume
	tx := s.db.Where("id = ?", id).First(&resume)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrResumeNotFound
		}
		return nil, tx.Error
	}
	return &resume, nil
}

// ListResumes pages through the user's resumes, newest first.
func (s *ResumesStore) ListResumes(userID, search string, limit, offset int) ([]model.Resume, int64, error) {
	where := ` WHERE user_id = ?`
	args := []interface{}{userID}

	if search != "" {
		where += ` AND (title ILIKE ? OR filename ILIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := s.db.Raw(`SELECT count(*) FROM resumes`+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM resumes` + where + ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if offset > 0 {
		query += ` OFFSET ?`
		args = append(args, offset)
	}

	var resumes []model.Resume
	if err := s.db.Raw(query, args...).Scan(&resumes).Error; err != nil {
		return nil, 0, err
	}
	return resumes, total, nil
}

// UpdateResumeStatus moves a resume through its lifecycle.
func (s *ResumesStore) UpdateResumeStatus(id, status string) error {
	return s.db.Model(&model.Resume{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteResume removes one of the user's resumes.
func (s *ResumesStore) DeleteResume(userID, id string) error {
	tx := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Resume{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrResumeNotFound
	}
	return nil
}
