// Package message implements the append-only ledger and read-state tracking
// for conversation messages.
package message

import (
	"errors"
	"time"

	"worklink/services/messaging-api/internal/domain/attachment"
)

var (
	// ErrNotAParticipant is returned when the sender or viewer is not one of
	// the conversation's two members.
	ErrNotAParticipant = errors.New("not a participant of this conversation")

	// ErrEmptyMessage is returned when a message carries neither body text
	// nor an attachment.
	ErrEmptyMessage = errors.New("message requires a body or an attachment")

	// ErrAttachmentInUse is returned when the attachment is already owned by
	// another message. Each attachment belongs to exactly one message.
	ErrAttachmentInUse = errors.New("attachment already belongs to another message")
)

// Kind describes what a message carries.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// Message is one entry in a conversation's ledger. Seq is the strict
// per-conversation ordering key assigned at append time; together with the
// creation timestamp it forms the total order. The read flag is the only
// field that mutates after creation, and only through the other
// participant's read action.
type Message struct {
	ID             uint                   `json:"-"`
	PublicID       string                 `json:"id"`
	ConversationID string                 `json:"conversation_id"`
	Seq            int64                  `json:"seq"`
	SenderID       string                 `json:"sender_id"`
	Body           string                 `json:"body"`
	Kind           Kind                   `json:"kind"`
	Attachment     *attachment.Attachment `json:"attachment,omitempty"`
	IsRead         bool                   `json:"is_read"`
	CreatedAt      time.Time              `json:"created_at"`
}
