package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrTemplateNotFound is returned when a template doesn't exist
var ErrTemplateNotFound = errors.New("template not found")

// TemplatesStore abstracts resume template persistence. Templates are
// global rows maintained by `rocketctl seed`.
type TemplatesStore interface {
	// UpsertTemplate inserts or replaces a template by ID.
	UpsertTemplate(template *model.ResumeTemplate) error

	// FetchTemplate retrieves a template by ID.
	// Returns ErrTemplateNotFound if it doesn't exist.
	FetchTemplate(id string) (*model.ResumeTemplate, error)

	// ListTemplates returns all templates in stable ID order.
	ListTemplates() ([]model.ResumeTemplate, error)
}
