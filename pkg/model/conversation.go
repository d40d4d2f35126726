package model

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// Message roles within a conversation session.
const (
	MessageRoleUser  = "user"
	MessageRoleCoach = "coach"
)

// ConversationSession is one coaching conversation between a user and a
// persona. Phase tracks the session's position in the coaching flow and
// only ever moves forward.
type ConversationSession struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;not null" json:"user_id"`
	PersonaID string    `gorm:"column:persona_id;not null" json:"persona_id"`
	Phase     string    `gorm:"column:phase;not null" json:"phase"`
	Status    string    `gorm:"column:status;not null" json:"status"`
	Metadata  JSON      `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ConversationSession) TableName() string {
	return "conversation_sessions"
}

// Completed reports whether the session has reached its final phase.
func (s *ConversationSession) Completed() bool {
	return s.Status == SessionStatusCompleted
}

// ConversationMessage is one turn in a session, from either side.
type ConversationMessage struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	SessionID string    `gorm:"column:session_id;not null" json:"session_id"`
	Role      string    `gorm:"column:role;not null" json:"role"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	Phase     string    `gorm:"column:phase" json:"phase"`
	Metadata  JSON      `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
