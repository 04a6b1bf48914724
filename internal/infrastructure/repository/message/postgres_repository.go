package message

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"worklink/services/messaging-api/internal/domain/conversation"
	domain "worklink/services/messaging-api/internal/domain/message"
	"worklink/services/messaging-api/internal/infrastructure/database/entities"
	"worklink/services/messaging-api/internal/infrastructure/metrics"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Repository persists ledger entries and read state.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a message repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append stores the message with the next sequence number for its
// conversation. The conversation row is locked FOR UPDATE for the duration of
// the transaction, so concurrent sends to the same conversation serialize and
// each receives a distinct seq. Sends to other conversations do not contend.
func (r *Repository) Append(ctx context.Context, conv *conversation.Conversation, msg *domain.Message) error {
	defer metrics.TimeDBQuery("message_append")()

	var (
		seq       int64
		createdAt time.Time
		entityID  uint
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked entities.Conversation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, conv.ID).Error; err != nil {
			return err
		}

		seq = locked.LastSeq + 1
		createdAt = time.Now().UTC()

		entity := &entities.Message{
			PublicID:       msg.PublicID,
			ConversationID: locked.ID,
			Seq:            seq,
			SenderID:       msg.SenderID,
			Body:           msg.Body,
			Kind:           string(msg.Kind),
			CreatedAt:      createdAt,
		}
		if msg.Attachment != nil {
			entity.AttachmentID = &msg.Attachment.ID
		}

		if err := tx.Create(entity).Error; err != nil {
			return err
		}
		entityID = entity.ID

		return tx.Model(&entities.Conversation{}).
			Where("id = ?", locked.ID).
			Updates(map[string]interface{}{
				"last_seq":        seq,
				"last_message_at": createdAt,
			}).Error
	})
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to append message",
			err,
			"message-append-db-error",
		)
	}

	msg.ID = entityID
	msg.Seq = seq
	msg.CreatedAt = createdAt
	conv.LastSeq = seq
	conv.LastMessageAt = createdAt
	return nil
}

// ListByConversation returns the full ledger in ascending (created_at, seq)
// order. Seq breaks creation-time ties deterministically.
func (r *Repository) ListByConversation(ctx context.Context, conv *conversation.Conversation) ([]*domain.Message, error) {
	defer metrics.TimeDBQuery("message_list")()

	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Preload("Attachment").
		Where("conversation_id = ?", conv.ID).
		Order("created_at ASC, seq ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"message-list-db-error",
		)
	}

	result := make([]*domain.Message, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD(conv.PublicID)
	}
	return result, nil
}

// LastByConversation returns the newest ledger entry, or nil when the
// conversation has no messages yet.
func (r *Repository) LastByConversation(ctx context.Context, conv *conversation.Conversation) (*domain.Message, error) {
	defer metrics.TimeDBQuery("message_last")()

	var entity entities.Message
	err := r.db.WithContext(ctx).
		Preload("Attachment").
		Where("conversation_id = ?", conv.ID).
		Order("seq DESC").
		First(&entity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch last message",
			err,
			"message-last-db-error",
		)
	}
	return entity.EtoD(conv.PublicID), nil
}

// MarkRead flips the read flag on every unread message the viewer did not
// author. Running it twice is a no-op; the second call matches zero rows.
func (r *Repository) MarkRead(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error) {
	defer metrics.TimeDBQuery("message_mark_read")()

	result := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conv.ID, viewerID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to mark messages read",
			result.Error,
			"message-mark-read-db-error",
		)
	}
	return result.RowsAffected, nil
}

// AttachmentInUse reports whether a message already references the
// attachment. The unique index on attachment_id backs this check against
// concurrent sends; the lookup gives reuse a clean validation error instead
// of a constraint violation.
func (r *Repository) AttachmentInUse(ctx context.Context, attachmentPublicID string) (bool, error) {
	defer metrics.TimeDBQuery("message_attachment_in_use")()

	var count int64
	sub := r.db.Model(&entities.Attachment{}).Select("id").Where("public_id = ?", attachmentPublicID)
	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("attachment_id = (?)", sub).
		Count(&count).Error; err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check attachment ownership",
			err,
			"message-attachment-in-use-db-error",
		)
	}
	return count > 0, nil
}

// CountUnread counts partner-authored messages the viewer has not read.
func (r *Repository) CountUnread(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error) {
	defer metrics.TimeDBQuery("message_count_unread")()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conv.ID, viewerID, false).
		Count(&count).Error; err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count unread messages",
			err,
			"message-count-unread-db-error",
		)
	}
	return count, nil
}
