package message

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/infrastructure/metrics"
	"worklink/services/messaging-api/internal/infrastructure/observability"
	"worklink/services/messaging-api/internal/utils/msgid"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Service is the ledger plus read-state surface driven by the HTTP layer.
type Service interface {
	// Append validates and stores a new message at the next position of the
	// conversation's ledger.
	Append(ctx context.Context, conversationID, senderID, body string, attachmentID *string) (*Message, error)

	// List returns the conversation's messages in ascending seq order.
	// Only the two participants may read a thread.
	List(ctx context.Context, conversationID, viewerID string) ([]*Message, error)

	// MarkRead transitions every partner-authored unread message to read and
	// returns the count transitioned. Idempotent.
	MarkRead(ctx context.Context, conversationID, viewerID string) (int64, error)

	// UnreadCount counts partner-authored messages still unread.
	UnreadCount(ctx context.Context, conversationID, viewerID string) (int64, error)
}

// DefaultService implements Service.
type DefaultService struct {
	conversations conversation.Repository
	messages      Repository
	attachments   attachment.Repository
	log           zerolog.Logger
}

// NewService builds the message ledger service.
func NewService(
	conversations conversation.Repository,
	messages Repository,
	attachments attachment.Repository,
	log zerolog.Logger,
) *DefaultService {
	return &DefaultService{
		conversations: conversations,
		messages:      messages,
		attachments:   attachments,
		log:           log.With().Str("component", "message-service").Logger(),
	}
}

// Append validates the send and stores the message. The attachment, if any,
// must already be a stored reference; a failed append leaves at worst an
// orphaned blob, never a message without one.
func (s *DefaultService) Append(ctx context.Context, conversationID, senderID, body string, attachmentID *string) (*Message, error) {
	ctx, span := observability.StartSendSpan(ctx, conversationID, senderID)
	defer span.End()

	conv, err := s.conversations.FindByPublicID(ctx, conversationID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, s.notAParticipant(ctx, conv.PublicID, senderID)
	}

	var att *attachment.Attachment
	if attachmentID != nil && *attachmentID != "" {
		att, err = s.attachments.FindByPublicID(ctx, *attachmentID)
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}

		inUse, err := s.messages.AttachmentInUse(ctx, att.PublicID)
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		if inUse {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation,
				fmt.Sprintf("attachment %s already belongs to another message", att.PublicID),
				ErrAttachmentInUse,
				"14e8d9ca-6f10-4b23-8e45-7a8b9c0d1e2f",
			)
		}
	}

	if strings.TrimSpace(body) == "" && att == nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"message must carry a body or an attachment",
			ErrEmptyMessage,
			"f2c6b7a8-4d9e-4f01-bc23-5e6f7a8b9c0d",
		)
	}

	kind := KindText
	if att != nil {
		kind = Kind(att.Kind)
	}

	msg := &Message{
		PublicID:       msgid.NewMessage(),
		ConversationID: conv.PublicID,
		SenderID:       senderID,
		Body:           body,
		Kind:           kind,
		Attachment:     att,
	}

	if err := s.messages.Append(ctx, conv, msg); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	metrics.RecordMessageSent(string(kind))
	span.SetAttributes(observability.MessageAttributes(conv.PublicID, senderID, string(kind), msg.Seq)...)
	s.log.Debug().
		Str("conversation_id", conv.PublicID).
		Str("message_id", msg.PublicID).
		Int64("seq", msg.Seq).
		Msg("message appended")

	return msg, nil
}

// List returns the thread for one of its two participants.
func (s *DefaultService) List(ctx context.Context, conversationID, viewerID string) ([]*Message, error) {
	conv, err := s.conversations.FindByPublicID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(viewerID) {
		return nil, s.notAParticipant(ctx, conv.PublicID, viewerID)
	}
	return s.messages.ListByConversation(ctx, conv)
}

// MarkRead flips the read flag on the partner's unread messages.
func (s *DefaultService) MarkRead(ctx context.Context, conversationID, viewerID string) (int64, error) {
	ctx, span := observability.StartMarkReadSpan(ctx, conversationID, viewerID)
	defer span.End()

	conv, err := s.conversations.FindByPublicID(ctx, conversationID)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}
	if !conv.HasParticipant(viewerID) {
		return 0, s.notAParticipant(ctx, conv.PublicID, viewerID)
	}

	transitioned, err := s.messages.MarkRead(ctx, conv, viewerID)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	metrics.RecordReadTransitions(transitioned)
	return transitioned, nil
}

// UnreadCount counts messages from the other participant still unread.
func (s *DefaultService) UnreadCount(ctx context.Context, conversationID, viewerID string) (int64, error) {
	conv, err := s.conversations.FindByPublicID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !conv.HasParticipant(viewerID) {
		return 0, s.notAParticipant(ctx, conv.PublicID, viewerID)
	}
	return s.messages.CountUnread(ctx, conv, viewerID)
}

func (s *DefaultService) notAParticipant(ctx context.Context, conversationID, userID string) error {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeForbidden,
		fmt.Sprintf("user %s is not a participant of conversation %s", userID, conversationID),
		ErrNotAParticipant,
		"03d7c8b9-5e0f-4a12-cd34-6f7a8b9c0d1e",
	)
}
