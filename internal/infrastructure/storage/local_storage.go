package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/config"
)

// LocalStorage keeps attachment blobs on the local filesystem. Intended for
// development and single-node deployments.
type LocalStorage struct {
	basePath string
	log      zerolog.Logger
}

// NewLocalStorage builds the filesystem backend rooted at the configured path.
func NewLocalStorage(cfg *config.Config, log zerolog.Logger) (*LocalStorage, error) {
	basePath := strings.TrimSpace(cfg.LocalStoragePath)
	if basePath == "" {
		basePath = "./attachment-data"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath: basePath,
		log:      log.With().Str("component", "local-storage").Logger(),
	}, nil
}

// resolve maps a storage key to a path under basePath, rejecting traversal.
func (l *LocalStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(l.basePath, cleaned), nil
}

// Upload writes the blob under the given key.
func (l *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	path, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create blob directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// Download opens the blob for reading. The content type is re-detected from
// the file since the filesystem stores no metadata.
func (l *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}

	mime := ""
	if detected, err := mimetype.DetectFile(path); err == nil {
		mime = detected.String()
	}
	return f, mime, nil
}

// Health verifies the base directory is writable.
func (l *LocalStorage) Health(ctx context.Context) error {
	probe := filepath.Join(l.basePath, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}
