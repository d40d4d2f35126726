package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrPersonaNotFound is returned when a persona profile doesn't exist
var ErrPersonaNotFound = errors.New("persona not found")

// PersonasStore abstracts the persona_profiles mirror of the compiled-in
// persona registry. `rocketctl seed` keeps it in sync; sessions
// reference it by foreign key.
type PersonasStore interface {
	// UpsertPersona inserts or replaces a profile by ID.
	UpsertPersona(profile *model.PersonaProfile) error

	// FetchPersona retrieves a profile by ID.
	// Returns ErrPersonaNotFound if it doesn't exist.
	FetchPersona(id string) (*model.PersonaProfile, error)

	// ListPersonas returns all profiles in stable ID order.
	ListPersonas() ([]model.PersonaProfile, error)
}
