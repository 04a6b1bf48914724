package entities

import (
	"time"

	"worklink/services/messaging-api/internal/domain/conversation"
)

// Conversation represents the database schema for conversations. The
// normalized participant pair carries a composite unique index so the
// unordered pair acts as a natural key.
type Conversation struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	ParticipantLow  string    `gorm:"type:varchar(64);uniqueIndex:idx_conversation_pair;not null"`
	ParticipantHigh string    `gorm:"type:varchar(64);uniqueIndex:idx_conversation_pair;not null"`
	LastSeq         int64     `gorm:"not null;default:0"`
	LastMessageAt   time.Time `gorm:"index:idx_conversation_activity"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// EtoD converts the database entity to the domain model.
func (c *Conversation) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:              c.ID,
		PublicID:        c.PublicID,
		ParticipantLow:  c.ParticipantLow,
		ParticipantHigh: c.ParticipantHigh,
		LastSeq:         c.LastSeq,
		LastMessageAt:   c.LastMessageAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// NewSchemaConversation creates a database entity from the domain model.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		ID:              c.ID,
		PublicID:        c.PublicID,
		ParticipantLow:  c.ParticipantLow,
		ParticipantHigh: c.ParticipantHigh,
		LastSeq:         c.LastSeq,
		LastMessageAt:   c.LastMessageAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
