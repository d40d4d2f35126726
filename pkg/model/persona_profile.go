package model

import "time"

// PersonaProfile is a coaching persona row. The authoritative persona
// definitions live in pkg/persona; this table mirrors them so sessions
// can reference personas by foreign key and so the catalog is queryable
// alongside the rest of the schema. `rocketctl seed` keeps it in sync.
type PersonaProfile struct {
	ID                string    `gorm:"column:id;primaryKey" json:"id"`
	Name              string    `gorm:"column:name;not null" json:"name"`
	Title             string    `gorm:"column:title" json:"title"`
	Tagline           string    `gorm:"column:tagline" json:"tagline"`
	ExpertiseAreas    JSON      `gorm:"column:expertise_areas;type:jsonb" json:"expertise_areas"`
	ConversationStyle JSON      `gorm:"column:conversation_style;type:jsonb" json:"conversation_style"`
	OpeningQuestions  JSON      `gorm:"column:opening_questions;type:jsonb" json:"opening_questions"`
	Goals             JSON      `gorm:"column:goals;type:jsonb" json:"goals"`
	CareerStages      JSON      `gorm:"column:career_stages;type:jsonb" json:"career_stages"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (PersonaProfile) TableName() string {
	return "persona_profiles"
}
