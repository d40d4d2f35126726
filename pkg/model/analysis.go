package model

import "time"

// Analysis kinds.
const (
	AnalysisKindQuality = "quality"
	AnalysisKindMatch   = "match"
)

// Analysis is a persisted engine run against a resume. Quality analyses
// stand alone; match analyses also reference the job posting they were
// scored against. Breakdown and Suggestions carry the engine's full
// structured output.
type Analysis struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	ResumeID     string    `gorm:"column:resume_id;not null" json:"resume_id"`
	JobID        *string   `gorm:"column:job_id" json:"job_id,omitempty"`
	Kind         string    `gorm:"column:kind;not null" json:"kind"`
	OverallScore int       `gorm:"column:overall_score" json:"overall_score"`
	Breakdown    JSON      `gorm:"column:breakdown;type:jsonb" json:"breakdown"`
	Suggestions  JSON      `gorm:"column:suggestions;type:jsonb" json:"suggestions"`
	Engine       string    `gorm:"column:engine" json:"engine"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
