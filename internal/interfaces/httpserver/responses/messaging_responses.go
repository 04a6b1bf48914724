// Package responses holds the HTTP response shapes for the messaging API.
package responses

import (
	"time"

	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/inbox"
	"worklink/services/messaging-api/internal/domain/message"
)

// ConversationResponse is the public view of a conversation.
type ConversationResponse struct {
	ID            string    `json:"id"`
	Participants  []string  `json:"participants"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewConversationResponse maps the domain conversation.
func NewConversationResponse(conv *conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:            conv.PublicID,
		Participants:  []string{conv.ParticipantLow, conv.ParticipantHigh},
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
	}
}

// AttachmentResponse is the public view of a stored attachment reference.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Bytes       int64     `json:"bytes"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAttachmentResponse maps the domain attachment.
func NewAttachmentResponse(att *attachment.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          att.PublicID,
		Filename:    att.Filename,
		ContentType: att.ContentType,
		Bytes:       att.Bytes,
		Kind:        string(att.Kind),
		CreatedAt:   att.CreatedAt,
	}
}

// MessageResponse is the public view of one ledger entry.
type MessageResponse struct {
	ID             string              `json:"id"`
	ConversationID string              `json:"conversation_id"`
	Seq            int64               `json:"seq"`
	SenderID       string              `json:"sender_id"`
	Body           string              `json:"body,omitempty"`
	Kind           string              `json:"kind"`
	Attachment     *AttachmentResponse `json:"attachment,omitempty"`
	IsRead         bool                `json:"is_read"`
	CreatedAt      time.Time           `json:"created_at"`
}

// NewMessageResponse maps the domain message.
func NewMessageResponse(msg *message.Message) MessageResponse {
	resp := MessageResponse{
		ID:             msg.PublicID,
		ConversationID: msg.ConversationID,
		Seq:            msg.Seq,
		SenderID:       msg.SenderID,
		Body:           msg.Body,
		Kind:           string(msg.Kind),
		IsRead:         msg.IsRead,
		CreatedAt:      msg.CreatedAt,
	}
	if msg.Attachment != nil {
		att := NewAttachmentResponse(msg.Attachment)
		resp.Attachment = &att
	}
	return resp
}

// MessageListResponse wraps a thread listing.
type MessageListResponse struct {
	Object string            `json:"object"`
	Data   []MessageResponse `json:"data"`
}

// NewMessageListResponse maps a slice of domain messages.
func NewMessageListResponse(msgs []*message.Message) MessageListResponse {
	data := make([]MessageResponse, len(msgs))
	for i, msg := range msgs {
		data[i] = NewMessageResponse(msg)
	}
	return MessageListResponse{Object: "list", Data: data}
}

// MarkReadResponse reports how many messages flipped to read.
type MarkReadResponse struct {
	ConversationID string `json:"conversation_id"`
	MarkedRead     int64  `json:"marked_read"`
}

// InboxSummaryResponse is one row of the inbox listing.
type InboxSummaryResponse struct {
	ConversationID string    `json:"conversation_id"`
	PartnerID      string    `json:"partner_id"`
	PartnerName    string    `json:"partner_name,omitempty"`
	Preview        string    `json:"preview"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int64     `json:"unread_count"`
}

// InboxResponse wraps the inbox listing.
type InboxResponse struct {
	Object string                 `json:"object"`
	Data   []InboxSummaryResponse `json:"data"`
}

// NewInboxResponse maps the inbox summaries.
func NewInboxResponse(summaries []inbox.Summary) InboxResponse {
	data := make([]InboxSummaryResponse, len(summaries))
	for i, s := range summaries {
		data[i] = InboxSummaryResponse{
			ConversationID: s.ConversationID,
			PartnerID:      s.PartnerID,
			PartnerName:    s.PartnerName,
			Preview:        s.Preview,
			LastMessageAt:  s.LastMessageAt,
			UnreadCount:    s.UnreadCount,
		}
	}
	return InboxResponse{Object: "list", Data: data}
}
