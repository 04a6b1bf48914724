// Package inbox composes the per-participant conversation overview. It is a
// pure read model over the conversation directory, the message ledger and the
// read-state tracker; it owns no state and performs no writes.
package inbox

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/message"
	"worklink/services/messaging-api/internal/domain/user"
)

// Summary is one inbox row: the partner, a preview of the newest message,
// the last-activity time and the live unread count.
type Summary struct {
	ConversationID string    `json:"conversation_id"`
	PartnerID      string    `json:"partner_id"`
	PartnerName    string    `json:"partner_name,omitempty"`
	Preview        string    `json:"preview"`
	LastMessageAt  time.Time `json:"last_message_at"`
	UnreadCount    int64     `json:"unread_count"`
}

// Service lists conversation summaries for a participant.
type Service interface {
	ListFor(ctx context.Context, participantID string) ([]Summary, error)
}

// DefaultService implements Service.
type DefaultService struct {
	conversations conversation.Repository
	messages      message.Repository
	directory     user.Directory
	previewLength int
	log           zerolog.Logger
}

// NewService builds the inbox read model.
func NewService(
	conversations conversation.Repository,
	messages message.Repository,
	directory user.Directory,
	previewLength int,
	log zerolog.Logger,
) *DefaultService {
	if previewLength <= 0 {
		previewLength = 120
	}
	return &DefaultService{
		conversations: conversations,
		messages:      messages,
		directory:     directory,
		previewLength: previewLength,
		log:           log.With().Str("component", "inbox-service").Logger(),
	}
}

// ListFor returns the participant's conversations ordered by descending
// last-activity time. Partner display names come from the user directory on a
// best-effort basis; a directory outage degrades to bare identifiers rather
// than failing the inbox.
func (s *DefaultService) ListFor(ctx context.Context, participantID string) ([]Summary, error) {
	convs, err := s.conversations.ListForParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(convs))
	for _, conv := range convs {
		partnerID := conv.PartnerOf(participantID)

		summary := Summary{
			ConversationID: conv.PublicID,
			PartnerID:      partnerID,
			LastMessageAt:  conv.LastMessageAt,
		}

		last, err := s.messages.LastByConversation(ctx, conv)
		if err != nil {
			return nil, err
		}
		if last != nil {
			summary.Preview = s.preview(last)
		}

		unread, err := s.messages.CountUnread(ctx, conv, participantID)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = unread

		if s.directory != nil {
			profile, err := s.directory.Resolve(ctx, partnerID)
			if err != nil {
				s.log.Warn().Err(err).Str("participant_id", partnerID).Msg("partner profile lookup failed")
			} else if profile != nil {
				summary.PartnerName = profile.DisplayName
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *DefaultService) preview(last *message.Message) string {
	text := last.Body
	if text == "" && last.Attachment != nil {
		text = last.Attachment.Filename
	}
	runes := []rune(text)
	if len(runes) <= s.previewLength {
		return text
	}
	return string(runes[:s.previewLength]) + "..."
}
