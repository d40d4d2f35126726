package gorm

import (
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure PersonasStore implements store.PersonasStore
var _ store.PersonasStore = (*PersonasStore)(nil)

// PersonasStore implements store.PersonasStore using GORM
type PersonasStore struct {
	db *gorm.DB
}

// NewPersonasStore creates a new PersonasStore
func NewPersonasStore(db *gorm.DB) *PersonasStore {
	return &PersonasStore{db: db}
}

// UpsertPersona inserts or replaces a profile by ID.
func (s *PersonasStore) UpsertPersona(profile *model.PersonaProfile) error {
	return s.db.Exec(`
		INSERT INTO persona_profiles
			(id, name, title, tagline, expertise_areas, conversation_style,
			 opening_questions, goals, career_stages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			title = EXCLUDED.title,
			tagline = EXCLUDED.tagline,
			expertise_areas = EXCLUDED.expertise_areas,
			conversation_style = EXCLUDED.conversation_style,
			opening_questions = EXCLUDED.opening_questions,
			goals = EXCLUDED.goals,
			career_stages = EXCLUDED.career_stages,
			updated_at = now()
	`, profile.ID, profile.Name, profile.Title, profile.Tagline,
		profile.ExpertiseAreas, profile.ConversationStyle,
		profile.OpeningQuestions, profile.Goals, profile.CareerStages).Error
}

// FetchPersona retrieves a profile by ID.
func (s *PersonasStore) FetchPersona(id string) (*model.PersonaProfile, error) {
	var profile model.PersonaProfile
	tx := s.db.Where("id = ?", id).First(&profile)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrPersonaNotFound
		}
		return nil, tx.Error
	}
	return &profile, nil
}

// ListPersonas returns all profiles in stable ID order.
func (s *PersonasStore) ListPersonas() ([]model.PersonaProfile, error) {
	var profiles []model.PersonaProfile
	if err := s.db.Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
