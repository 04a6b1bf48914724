package conversation

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/infrastructure/database/entities"
	"worklink/services/messaging-api/internal/infrastructure/metrics"
	"worklink/services/messaging-api/internal/utils/msgid"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Repository persists conversation identity.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a conversation repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrCreate returns the conversation for the normalized pair, inserting a
// fresh row when none exists. The insert uses ON CONFLICT DO NOTHING against
// the unique pair index, then refetches, so two racing first-contacts both
// land on the same row and neither observes an error.
func (r *Repository) FindOrCreate(ctx context.Context, participantLow, participantHigh string) (*domain.Conversation, error) {
	defer metrics.TimeDBQuery("conversation_find_or_create")()

	entity := &entities.Conversation{
		PublicID:        msgid.NewConversation(),
		ParticipantLow:  participantLow,
		ParticipantHigh: participantHigh,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "participant_low"}, {Name: "participant_high"}},
			DoNothing: true,
		}).
		Create(entity).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"conversation-find-or-create-insert",
		)
	}

	// The insert reports nothing useful when the row already existed, so
	// always read the winning row back by its pair key.
	var existing entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("participant_low = ? AND participant_high = ?", participantLow, participantHigh).
		First(&existing).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation after upsert",
			err,
			"conversation-find-or-create-refetch",
		)
	}

	return existing.EtoD(), nil
}

// FindByPublicID fetches a conversation by its public identifier.
func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*domain.Conversation, error) {
	defer metrics.TimeDBQuery("conversation_find")()

	var entity entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("conversation not found: %s", publicID),
				domain.ErrNotFound,
				"conversation-find-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch conversation",
			err,
			"conversation-find-db-error",
		)
	}

	return entity.EtoD(), nil
}

// ListForParticipant returns every conversation the participant belongs to,
// newest activity first.
func (r *Repository) ListForParticipant(ctx context.Context, participantID string) ([]*domain.Conversation, error) {
	defer metrics.TimeDBQuery("conversation_list")()

	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("participant_low = ? OR participant_high = ?", participantID, participantID).
		Order("last_message_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"conversation-list-db-error",
		)
	}

	result := make([]*domain.Conversation, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}
