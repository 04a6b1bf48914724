package handlers

import (
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/inbox"
	"worklink/services/messaging-api/internal/domain/message"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Conversation *ConversationHandler
	Message      *MessageHandler
	Attachment   *AttachmentHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	conversationService conversation.Service,
	messageService message.Service,
	attachmentService *attachment.Service,
	inboxService inbox.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Conversation: NewConversationHandler(conversationService, inboxService, log),
		Message:      NewMessageHandler(messageService, log),
		Attachment:   NewAttachmentHandler(attachmentService, log),
	}
}
