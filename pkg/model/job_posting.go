package model

import "time"

// JobPosting is a job description a resume can be matched against.
// UserID is nil for seeded global postings visible to everyone.
type JobPosting struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	UserID      *string   `gorm:"column:user_id" json:"user_id,omitempty"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Company     string    `gorm:"column:company" json:"company"`
	Location    string    `gorm:"column:location" json:"location"`
	Description string    `gorm:"column:description" json:"description"`
	Skills      JSON      `gorm:"column:skills;type:jsonb" json:"skills,omitempty"`
	Seniority   string    `gorm:"column:seniority" json:"seniority"`
	SourceURL   string    `gorm:"column:source_url" json:"source_url,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// VisibleTo reports whether the posting can be read by the given user.
func (j *JobPosting) VisibleTo(userID string) bool {
	return j.UserID == nil || *j.UserID == userID
}
