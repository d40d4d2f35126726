package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure ConversationsStore implements store.ConversationsStore
var _ store.ConversationsStore = (*ConversationsStore)(nil)

// ConversationsStore implements store.ConversationsStore using GORM
type ConversationsStore struct {
	db *gorm.DB
}

// NewConversationsStore creates a new ConversationsStore
func NewConversationsStore(db *gorm.DB) *ConversationsStore {
	return &ConversationsStore{db: db}
}

// CreateSession inserts a new session.
func (s *ConversationsStore) CreateSession(session *model.ConversationSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	return s.db.Create(session).Error
}

// FetchSession retrieves one of the user's sessions.
func (s *ConversationsStore) FetchSession(userID, id string) (*model.ConversationSession, error) {
	var session model.ConversationSession
	tx := s.db.Where("id = ? AND user_id = ?", id, userID).First(&session)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrSessionNotFound
		}
		return nil, tx.Error
	}
	return &session, nil
}

// UpdateSession persists a session's phase, status and metadata.
func (s *ConversationsStore) UpdateSession(session *model.ConversationSession) error {
	return s.db.Model(&model.ConversationSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"phase":    session.Phase,
			"status":   session.Status,
			"metadata": session.Metadata,
		}).Error
}

// AppendMessage adds one message to a session's transcript.
func (s *ConversationsStore) AppendMessage(message *model.ConversationMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	return s.db.Create(message).Error
}

// ListMessages returns a session's transcript in chronological order.
func (s *ConversationsStore) ListMessages(sessionID string) ([]model.ConversationMessage, error) {
	var messages []model.ConversationMessage
	tx := s.db.Where("session_id = ?", sessionID).Order("created_at").Find(&messages)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return messages, nil
}
