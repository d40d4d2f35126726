package gorm

import (
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure TemplatesStore implements store.TemplatesStore
var _ store.TemplatesStore = (*TemplatesStore)(nil)

// TemplatesStore implements store.TemplatesStore using GORM
type TemplatesStore struct {
	db *gorm.DB
}

// NewTemplatesStore creates a new TemplatesStore
func NewTemplatesStore(db *gorm.DB) *TemplatesStore {
	return &TemplatesStore{db: db}
}

// UpsertTemplate inserts or replaces a template by ID.
func (s *TemplatesStore) UpsertTemplate(template *model.ResumeTemplate) error {
	return s.db.Exec(`
		INSERT INTO resume_templates (id, name, description, accent, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			accent = EXCLUDED.accent,
			sections = EXCLUDED.sections,
			updated_at = now()
	`, template.ID, template.Name, template.Description, template.Accent, template.Sections).Error
}

// FetchTemplate retrieves a template by ID.
func (s *TemplatesStore) FetchTemplate(id string) (*model.ResumeTemplate, error) {
	var template model.ResumeTemplate
	tx := s.db.Where("id = ?", id).First(&template)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrTemplateNotFound
		}
		return nil, tx.Error
	}
	return &template, nil
}

// ListTemplates returns all templates in stable ID order.
func (s *TemplatesStore) ListTemplates() ([]model.ResumeTemplate, error) {
	var templates []model.ResumeTemplate
	if err := s.db.Order("id").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
