// Package requests holds the HTTP request bindings for the messaging API.
package requests

// OpenConversationRequest resolves or creates the thread for two participants.
type OpenConversationRequest struct {
	ParticipantA string `json:"participant_a" binding:"required"`
	ParticipantB string `json:"participant_b" binding:"required"`
}

// SendMessageRequest appends one message to a conversation.
type SendMessageRequest struct {
	SenderID     string  `json:"sender_id" binding:"required"`
	Body         string  `json:"body"`
	AttachmentID *string `json:"attachment_id,omitempty"`
}

// MarkReadRequest marks the viewer's side of a conversation as read.
type MarkReadRequest struct {
	ViewerID string `json:"viewer_id" binding:"required"`
}
