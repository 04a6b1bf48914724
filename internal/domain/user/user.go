// Package user defines the external user-directory collaborator contract.
package user

import "context"

// Profile is the directory's view of a participant. The messaging core never
// persists a copy of it.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Directory resolves participant identifiers to profiles.
type Directory interface {
	Resolve(ctx context.Context, participantID string) (*Profile, error)
}
