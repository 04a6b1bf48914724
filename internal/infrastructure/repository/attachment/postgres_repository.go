package attachment

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/infrastructure/database/entities"
	"worklink/services/messaging-api/internal/infrastructure/metrics"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Repository persists attachment references.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an attachment repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the attachment record.
func (r *Repository) Create(ctx context.Context, att *domain.Attachment) error {
	defer metrics.TimeDBQuery("attachment_create")()

	entity := entities.NewSchemaAttachment(att)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create attachment",
			err,
			"attachment-create-db-error",
		)
	}

	att.ID = entity.ID
	att.CreatedAt = entity.CreatedAt
	return nil
}

// FindByPublicID fetches an attachment by its public identifier.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*domain.Attachment, error) {
	defer metrics.TimeDBQuery("attachment_find")()

	var entity entities.Attachment
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("attachment not found: %s", publicID),
				domain.ErrNotFound,
				"attachment-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch attachment",
			err,
			"attachment-find-db-error",
		)
	}

	return entity.EtoD(), nil
}
