package conversation

import "context"

// Repository exposes persistence operations for conversation identity.
type Repository interface {
	// FindOrCreate returns the conversation for the normalized pair,
	// creating it atomically when no row exists yet. Two concurrent
	// first-contacts converge on the same row.
	FindOrCreate(ctx context.Context, participantLow, participantHigh string) (*Conversation, error)

	// FindByPublicID fetches a conversation by its public identifier.
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)

	// ListForParticipant returns every conversation the participant belongs
	// to, ordered by descending last-activity time.
	ListForParticipant(ctx context.Context, participantID string) ([]*Conversation, error)
}
