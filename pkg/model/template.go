package model

import "time"

// ResumeTemplate is a layout preset the frontend renders resumes with.
// IDs are stable slugs ("modern", "classic") referenced by clients.
type ResumeTemplate struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	Accent      string    `gorm:"column:accent" json:"accent"`
	Sections    JSON      `gorm:"column:sections;type:jsonb" json:"sections"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ResumeTemplate) TableName() string {
	return "resume_templates"
}
