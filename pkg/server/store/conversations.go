package store

import (
	"errors"

	"github.com/rocketresume/rocket/pkg/model"
)

// ErrSessionNotFound is returned when a conversation session doesn't
// exist or belongs to a different user
var ErrSessionNotFound = errors.New("conversation session not found")

// ConversationsStore abstracts coaching session persistence.
type ConversationsStore interface {
	// CreateSession inserts a new session.
	CreateSession(session *model.ConversationSession) error

	// FetchSession retrieves one of the user's sessions.
	// Returns ErrSessionNotFound for other users' sessions.
	FetchSession(userID, id string) (*model.ConversationSession, error)

	// UpdateSession persists a session's phase, status and metadata.
	UpdateSession(session *model.ConversationSession) error

	// AppendMessage adds one message to a session's transcript.
	AppendMessage(message *model.ConversationMessage) error

	// ListMessages returns a session's transcript in chronological
	// order.
	ListMessages(sessionID string) ([]model.ConversationMessage, error)
}
