// Package conversation holds the durable two-party thread identity.
package conversation

import (
	"errors"
	"time"
)

// ErrInvalidParticipants is returned when a participant attempts to open a
// conversation with themself.
var ErrInvalidParticipants = errors.New("conversation participants must be two distinct users")

// ErrNotFound is returned when no conversation matches the requested identity.
var ErrNotFound = errors.New("conversation not found")

// Conversation represents a direct-message thread between exactly two
// participants. The unordered pair is stored normalized as (low, high) so the
// pair acts as a natural key regardless of who initiated contact.
type Conversation struct {
	ID              uint      `json:"-"`
	PublicID        string    `json:"id"`
	ParticipantLow  string    `json:"participant_low"`
	ParticipantHigh string    `json:"participant_high"`
	LastSeq         int64     `json:"-"`
	LastMessageAt   time.Time `json:"last_message_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NormalizePair orders two participant identifiers lexicographically so the
// same pair always maps to the same storage key.
func NormalizePair(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether the given identifier is one of the two
// conversation members.
func (c *Conversation) HasParticipant(participantID string) bool {
	return participantID == c.ParticipantLow || participantID == c.ParticipantHigh
}

// PartnerOf returns the other member of the conversation. Callers must have
// already verified membership.
func (c *Conversation) PartnerOf(participantID string) string {
	if participantID == c.ParticipantLow {
		return c.ParticipantHigh
	}
	return c.ParticipantLow
}
