package message

import (
	"context"

	"worklink/services/messaging-api/internal/domain/conversation"
)

// Repository persists ledger entries and read state. Append serializes
// sequence assignment per conversation; implementations lock only the single
// conversation row so unrelated conversations never contend.
type Repository interface {
	// Append assigns the next sequence number, stamps the creation time,
	// stores the message and advances the conversation's last-activity
	// marker, all in one transaction. The passed message and conversation
	// are updated in place with the assigned values.
	Append(ctx context.Context, conv *conversation.Conversation, msg *Message) error

	// ListByConversation returns the full ledger in ascending seq order.
	ListByConversation(ctx context.Context, conv *conversation.Conversation) ([]*Message, error)

	// LastByConversation returns the newest message, or nil when the
	// conversation is empty.
	LastByConversation(ctx context.Context, conv *conversation.Conversation) (*Message, error)

	// MarkRead flips the read flag on every message authored by the other
	// participant that is still unread, returning the number transitioned.
	MarkRead(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error)

	// CountUnread counts partner-authored messages with the read flag unset.
	CountUnread(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error)

	// AttachmentInUse reports whether any message already references the
	// attachment. Each attachment is owned by at most one message.
	AttachmentInUse(ctx context.Context, attachmentPublicID string) (bool, error)
}
