package attachment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/config"
)

type fakeRepository struct {
	created []*Attachment
	byID    map[string]*Attachment
}

func (f *fakeRepository) Create(ctx context.Context, att *Attachment) error {
	f.created = append(f.created, att)
	if f.byID == nil {
		f.byID = make(map[string]*Attachment)
	}
	f.byID[att.PublicID] = att
	return nil
}

func (f *fakeRepository) FindByPublicID(ctx context.Context, publicID string) (*Attachment, error) {
	if att, ok := f.byID[publicID]; ok {
		return att, nil
	}
	return nil, ErrNotFound
}

type fakeStorage struct {
	uploads   map[string][]byte
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = data
	return nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := f.uploads[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), "", nil
}

func (f *fakeStorage) Health(ctx context.Context) error { return nil }

func newTestService(storage *fakeStorage, repo *fakeRepository) *Service {
	cfg := &config.Config{MaxAttachmentBytes: 10 * 1024 * 1024}
	return NewService(cfg, repo, storage, zerolog.Nop())
}

func TestAcceptStoresWithinLimit(t *testing.T) {
	storage := &fakeStorage{}
	repo := &fakeRepository{}
	svc := newTestService(storage, repo)

	data := []byte("portable document content")
	att, err := svc.Accept(context.Background(), data, "resume.pdf", "application/pdf", "user_1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if att.Kind != KindFile {
		t.Fatalf("kind = %q, want file", att.Kind)
	}
	if att.Bytes != int64(len(data)) {
		t.Fatalf("bytes = %d, want %d", att.Bytes, len(data))
	}
	if !strings.HasPrefix(att.PublicID, "att_") {
		t.Fatalf("public id %q missing att_ prefix", att.PublicID)
	}
	if !strings.HasSuffix(att.StorageKey, ".pdf") {
		t.Fatalf("storage key %q should keep the original extension", att.StorageKey)
	}
	if _, stored := storage.uploads[att.StorageKey]; !stored {
		t.Fatalf("blob not written under %q", att.StorageKey)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one repository record, got %d", len(repo.created))
	}
}

func TestAcceptClassifiesImages(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, &fakeRepository{})

	att, err := svc.Accept(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "photo.png", "image/png", "user_1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if att.Kind != KindImage {
		t.Fatalf("kind = %q, want image", att.Kind)
	}
}

func TestAcceptPrefersSniffedContentType(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, &fakeRepository{})

	// Real PNG signature declared as plain text; the stored type must
	// reflect the actual content.
	pngMagic := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	att, err := svc.Accept(context.Background(), pngMagic, "photo.png", "text/plain", "user_1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if att.ContentType != "image/png" {
		t.Fatalf("content type = %q, want image/png", att.ContentType)
	}
}

func TestAcceptFallsBackToDeclaredType(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, &fakeRepository{})

	// Opaque bytes the sniffer cannot place; the declared type fills in.
	att, err := svc.Accept(context.Background(), []byte{0x00, 0x01, 0x02, 0x03}, "report.dat", "application/vnd.worklink.report", "user_1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if att.ContentType != "application/vnd.worklink.report" {
		t.Fatalf("content type = %q, want declared fallback", att.ContentType)
	}
}

func TestAcceptRejectsOversizePayload(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, &fakeRepository{})

	data := make([]byte, 10*1024*1024+1)
	_, err := svc.Accept(context.Background(), data, "huge.zip", "application/zip", "user_1")
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error = %v, want ErrTooLarge", err)
	}
	if len(storage.uploads) != 0 {
		t.Fatalf("oversize payload must not reach storage")
	}
}

func TestAcceptExactLimitAllowed(t *testing.T) {
	storage := &fakeStorage{}
	svc := newTestService(storage, &fakeRepository{})

	data := make([]byte, 10*1024*1024)
	if _, err := svc.Accept(context.Background(), data, "edge.bin", "application/octet-stream", "user_1"); err != nil {
		t.Fatalf("payload exactly at the ceiling should be accepted: %v", err)
	}
}

func TestAcceptRejectsExecutableBeforeStorage(t *testing.T) {
	storage := &fakeStorage{}
	repo := &fakeRepository{}
	svc := newTestService(storage, repo)

	_, err := svc.Accept(context.Background(), []byte("MZ..."), "payload.exe", "application/octet-stream", "user_1")
	if !errors.Is(err, ErrUnsafeType) {
		t.Fatalf("error = %v, want ErrUnsafeType", err)
	}
	if len(storage.uploads) != 0 {
		t.Fatalf("rejected upload must not be written to storage")
	}
	if len(repo.created) != 0 {
		t.Fatalf("rejected upload must not be recorded")
	}
}

func TestAcceptRejectsEmptyPayload(t *testing.T) {
	svc := newTestService(&fakeStorage{}, &fakeRepository{})

	_, err := svc.Accept(context.Background(), nil, "empty.txt", "text/plain", "user_1")
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("error = %v, want ErrEmpty", err)
	}
}

func TestAcceptSurfacesStorageFailure(t *testing.T) {
	storage := &fakeStorage{uploadErr: errors.New("disk full")}
	repo := &fakeRepository{}
	svc := newTestService(storage, repo)

	_, err := svc.Accept(context.Background(), []byte("data"), "notes.txt", "text/plain", "user_1")
	if err == nil {
		t.Fatalf("expected storage failure to surface")
	}
	if len(repo.created) != 0 {
		t.Fatalf("failed upload must not leave a repository record")
	}
}

func TestOpenRoundTripsBlob(t *testing.T) {
	storage := &fakeStorage{}
	repo := &fakeRepository{}
	svc := newTestService(storage, repo)

	data := []byte("round trip")
	att, err := svc.Accept(context.Background(), data, "file.txt", "text/plain", "user_1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	got, reader, err := svc.Open(context.Background(), att.PublicID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if got.PublicID != att.PublicID {
		t.Fatalf("Open returned %q, want %q", got.PublicID, att.PublicID)
	}
	body, _ := io.ReadAll(reader)
	if !bytes.Equal(body, data) {
		t.Fatalf("blob content mismatch")
	}
}
