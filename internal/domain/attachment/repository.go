package attachment

import "context"

// Repository persists attachment references.
type Repository interface {
	Create(ctx context.Context, att *Attachment) error
	FindByPublicID(ctx context.Context, publicID string) (*Attachment, error)
}
