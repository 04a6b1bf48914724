package entities

import (
	"time"

	"worklink/services/messaging-api/internal/domain/attachment"
)

// Attachment represents the persisted attachment reference.
type Attachment struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID    string `gorm:"type:varchar(50);uniqueIndex;not null"`
	StorageKey  string `gorm:"type:varchar(255);not null"`
	Filename    string `gorm:"type:varchar(255);not null"`
	ContentType string `gorm:"type:varchar(64)"`
	Bytes       int64  `gorm:"not null"`
	Kind        string `gorm:"type:varchar(10);not null"`
	UploadedBy  string `gorm:"type:varchar(64)"`
}

// TableName specifies the table name for Attachment.
func (Attachment) TableName() string {
	return "attachments"
}

// EtoD converts the database entity to the domain model.
func (a *Attachment) EtoD() *attachment.Attachment {
	return &attachment.Attachment{
		ID:          a.ID,
		PublicID:    a.PublicID,
		StorageKey:  a.StorageKey,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Bytes:       a.Bytes,
		Kind:        attachment.Kind(a.Kind),
		UploadedBy:  a.UploadedBy,
		CreatedAt:   a.CreatedAt,
	}
}

// NewSchemaAttachment creates a database entity from the domain model.
func NewSchemaAttachment(a *attachment.Attachment) *Attachment {
	return &Attachment{
		ID:          a.ID,
		PublicID:    a.PublicID,
		StorageKey:  a.StorageKey,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Bytes:       a.Bytes,
		Kind:        string(a.Kind),
		UploadedBy:  a.UploadedBy,
	}
}
