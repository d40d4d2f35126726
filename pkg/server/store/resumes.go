package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrResumeNotFound is returned when a resume doesn't exist or belongs
// to a different user
var ErrResumeNotFound = errors.New("resume not found")

// ResumesStore abstracts resume persistence. All user-facing lookups
// are scoped by owner; FetchResumeByID exists for the worker, which
// processes queue messages that carry no user context.
type ResumesStore interface {
	// CreateResume inserts a new resume row.
	CreateResume(resume *model.Resume) error

	// FetchResume retrieves one of the user's resumes.
	// Returns ErrResumeNotFound for other users' resumes.
	FetchResume(userID, id string) (*model.Resume, error)

	// FetchResumeByID retrieves a resume without owner scoping.
	FetchResumeByID(id string) (*model.Resume, error)

	// ListResumes pages through the user's resumes, newest first,
	// optionally filtered by a title/filename substring. The second
	// return is the total count before paging.
	ListResumes(userID, search string, limit, offset int) ([]model.Resume, int64, error)

	// UpdateResumeStatus moves a resume through its lifecycle.
	UpdateResumeStatus(id, status string) error

	// DeleteResume removes one of the user's resumes.
	// Returns ErrResumeNotFound when nothing was deleted.
	DeleteResume(userID, id string) error
}
