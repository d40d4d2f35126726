package model

import "time"

// Resume statuses follow the upload lifecycle. A resume starts as
// ResumeStatusUploaded and moves to analyzed or failed once the quality
// engine has run, either inline or through the worker queue.
const (
	ResumeStatusUploaded   = "uploaded"
	ResumeStatusProcessing = "processing"
	ResumeStatusAnalyzed   = "analyzed"
	ResumeStatusFailed     = "failed"
)

// Resume is an uploaded resume document. The original file lives in the
// storage backend under StorageKey; ContentText holds the extracted text
// that the analysis engines operate on.
type Resume struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;not null" json:"user_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Filename    string    `gorm:"column:filename" json:"filename"`
	ContentType string    `gorm:"column:content_type" json:"content_type"`
	StorageKey  string    `gorm:"column:storage_key" json:"-"`
	ContentText string    `gorm:"column:content_text" json:"-"`
	WordCount   int       `gorm:"column:word_count" json:"word_count"`
	Status      string    `gorm:"column:status;not null" json:"status"`
	Metadata    JSON      `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
