// Package attachment stores and classifies binary payloads attached to
// messages.
package attachment

import (
	"errors"
	"time"
)

var (
	// ErrTooLarge is returned when an upload exceeds the configured ceiling.
	ErrTooLarge = errors.New("attachment exceeds maximum allowed size")

	// ErrEmpty is returned when an upload carries no bytes.
	ErrEmpty = errors.New("attachment is empty")

	// ErrNotFound is returned when no attachment matches the identifier.
	ErrNotFound = errors.New("attachment not found")
)

// Attachment is the stored reference for one message's binary payload. An
// attachment belongs to exactly one message; there is no sharing or
// deduplication across messages.
type Attachment struct {
	ID          uint      `json:"-"`
	PublicID    string    `json:"id"`
	StorageKey  string    `json:"-"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Bytes       int64     `json:"bytes"`
	Kind        Kind      `json:"kind"`
	UploadedBy  string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
