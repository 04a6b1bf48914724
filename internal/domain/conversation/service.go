package conversation

import (
	"context"

	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Service resolves participant pairs to durable conversation identities.
type Service interface {
	// OpenOrCreate returns the single conversation for the unordered pair
	// {a, b}, creating it on first contact. The argument order does not
	// matter.
	OpenOrCreate(ctx context.Context, participantA, participantB string) (*Conversation, error)

	// Get fetches a conversation by public identifier.
	Get(ctx context.Context, publicID string) (*Conversation, error)
}

// DefaultService implements Service on top of the repository.
type DefaultService struct {
	repo Repository
	log  zerolog.Logger
}

// NewService builds the conversation directory service.
func NewService(repo Repository, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo: repo,
		log:  log.With().Str("component", "conversation-service").Logger(),
	}
}

// OpenOrCreate validates the pair and delegates to the atomic
// insert-on-conflict repository operation. Existence of the participants is
// the user directory's concern; only non-equality is enforced here.
func (s *DefaultService) OpenOrCreate(ctx context.Context, participantA, participantB string) (*Conversation, error) {
	if participantA == "" || participantB == "" || participantA == participantB {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"a conversation requires two distinct participants",
			ErrInvalidParticipants,
			"c1a4b9e2-0d3f-47a6-9b82-5e1f6c7d8a90",
		)
	}

	low, high := NormalizePair(participantA, participantB)
	conv, err := s.repo.FindOrCreate(ctx, low, high)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("conversation_id", conv.PublicID).
		Str("participant_low", low).
		Str("participant_high", high).
		Msg("conversation resolved")

	return conv, nil
}

// Get fetches a conversation by public identifier.
func (s *DefaultService) Get(ctx context.Context, publicID string) (*Conversation, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}
