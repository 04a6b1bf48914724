package attachment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/config"
	"worklink/services/messaging-api/internal/infrastructure/metrics"
	"worklink/services/messaging-api/internal/infrastructure/observability"
	"worklink/services/messaging-api/internal/utils/msgid"
	"worklink/services/messaging-api/internal/utils/platformerrors"
)

// Storage defines content storage operations for attachment blobs.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	Health(ctx context.Context) error
}

// Service validates, classifies and stores attachments ahead of a message
// append. The blob is durably stored before any message references it, so a
// failed append never leaves a message pointing at a missing blob.
type Service struct {
	cfg     *config.Config
	repo    Repository
	storage Storage
	log     zerolog.Logger
}

// NewService builds the attachment store service.
func NewService(cfg *config.Config, repo Repository, storage Storage, log zerolog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		storage: storage,
		log:     log.With().Str("component", "attachment-service").Logger(),
	}
}

// Accept validates the upload, writes it to content storage and records the
// reference. Policy rejections happen before any storage write.
func (s *Service) Accept(ctx context.Context, data []byte, filename, declaredMime, uploaderID string) (*Attachment, error) {
	ctx, span := observability.StartIngestSpan(ctx, filename, int64(len(data)))
	defer span.End()

	if len(data) == 0 {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"attachment payload is empty",
			ErrEmpty,
			"a7f1c2d3-9e4b-4a5c-8d6e-0f1a2b3c4d5e",
		)
	}
	if int64(len(data)) > s.cfg.MaxAttachmentBytes {
		metrics.RecordAttachmentIngest("", "rejected_too_large")
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeTooLarge,
			fmt.Sprintf("attachment exceeds max size of %d bytes", s.cfg.MaxAttachmentBytes),
			ErrTooLarge,
			"b8e2d3c4-0f5a-4b6d-9e7f-1a2b3c4d5e6f",
		)
	}

	kind, err := Classify(filename, declaredMime)
	if err != nil {
		metrics.RecordAttachmentIngest("", "rejected_unsafe")
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnsupportedMedia,
			fmt.Sprintf("attachment %q has a disallowed type", filename),
			ErrUnsafeType,
			"c9f3e4d5-1a6b-4c7e-8f90-2b3c4d5e6f7a",
		)
	}

	// The sniffed type wins over the client's claim; the declared type is
	// used only when detection is inconclusive.
	contentType := mimetype.Detect(data).String()
	if contentType == "application/octet-stream" {
		if declared := strings.TrimSpace(declaredMime); declared != "" {
			contentType = declared
		}
	}

	id := msgid.NewAttachment()
	key := storageKey(id, filename)

	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		observability.RecordError(span, err)
		metrics.RecordAttachmentIngest(string(kind), "storage_error")
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"attachment storage write failed",
			err,
			"d0a4f5e6-2b7c-4d8f-9a01-3c4d5e6f7a8b",
		)
	}

	att := &Attachment{
		PublicID:    id,
		StorageKey:  key,
		Filename:    filename,
		ContentType: contentType,
		Bytes:       int64(len(data)),
		Kind:        kind,
		UploadedBy:  uploaderID,
	}
	if err := s.repo.Create(ctx, att); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	metrics.RecordAttachmentIngest(string(kind), "stored")
	s.log.Debug().
		Str("attachment_id", att.PublicID).
		Str("kind", string(kind)).
		Int64("bytes", att.Bytes).
		Msg("attachment stored")

	return att, nil
}

// Get fetches a stored attachment reference.
func (s *Service) Get(ctx context.Context, publicID string) (*Attachment, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}

// Open fetches blob contents for proxying back to the caller.
func (s *Service) Open(ctx context.Context, publicID string) (*Attachment, io.ReadCloser, error) {
	att, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, nil, err
	}
	reader, contentType, err := s.storage.Download(ctx, att.StorageKey)
	if err != nil {
		return nil, nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"attachment storage read failed",
			err,
			"e1b5a6f7-3c8d-4e90-ab12-4d5e6f7a8b9c",
		)
	}
	if contentType != "" {
		att.ContentType = contentType
	}
	return att, reader, nil
}

// storageKey derives a collision-free blob name from the ULID id plus the
// original extension.
func storageKey(id, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("attachments/%s%s", id, ext)
}
