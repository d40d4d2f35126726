package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrJobNotFound is returned when a job posting doesn't exist or isn't
// visible to the user
var ErrJobNotFound = errors.New("job posting not found")

// JobsStore abstracts job posting persistence. Postings with a nil
// user_id are global: seeded rows every user can read but nobody owns.
type JobsStore interface {
	// CreateJob inserts a new posting.
	CreateJob(job *model.JobPosting) error

	// FetchJob retrieves a posting visible to the user (their own or a
	// global one). Returns ErrJobNotFound otherwise.
	FetchJob(userID, id string) (*model.JobPosting, error)

	// ListJobs pages through postings visible to the user, newest
	// first. The second return is the total count before paging.
	ListJobs(userID string, limit, offset int) ([]model.JobPosting, int64, error)

	// DeleteJob removes one of the user's own postings. Global
	// postings cannot be deleted through the API.
	DeleteJob(userID, id string) error
}
