package entities

import (
	"time"

	"worklink/services/messaging-api/internal/domain/message"
)

// Message stores each ledger entry for a conversation. Seq is unique within
// its conversation; the composite index enforces the strict total order.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`

	PublicID       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	ConversationID uint   `gorm:"uniqueIndex:idx_message_conversation_seq;index:idx_message_read_state;not null"`
	Seq            int64  `gorm:"uniqueIndex:idx_message_conversation_seq;not null"`
	SenderID       string `gorm:"type:varchar(64);index:idx_message_read_state;not null"`
	Body           string `gorm:"type:text"`
	Kind           string `gorm:"type:varchar(10);not null;default:'text'"`
	IsRead         bool   `gorm:"not null;default:false;index:idx_message_read_state"`

	// The unique index keeps each attachment owned by exactly one message;
	// NULLs are exempt so text-only messages never collide.
	AttachmentID *uint       `gorm:"uniqueIndex:idx_message_attachment"`
	Attachment   *Attachment `gorm:"foreignKey:AttachmentID"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// EtoD converts the database entity to the domain model. The conversation's
// public identifier is supplied by the caller since messages reference the
// internal key.
func (m *Message) EtoD(conversationPublicID string) *message.Message {
	msg := &message.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: conversationPublicID,
		Seq:            m.Seq,
		SenderID:       m.SenderID,
		Body:           m.Body,
		Kind:           message.Kind(m.Kind),
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
	if m.Attachment != nil {
		msg.Attachment = m.Attachment.EtoD()
	}
	return msg
}
