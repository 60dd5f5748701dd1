// Package uploads stores admin-submitted images on disk and maps them to
// public URLs.
package uploads

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"
	"tripdesk/internal/models"

	"github.com/google/uuid"
)

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Store struct {
	dir       string
	publicURL string
}

func NewStore(cfg config.UploadsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:       cfg.Dir,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Dir returns the on-disk directory, for serving the files back.
func (s *Store) Dir() string { return s.dir }

// SaveBase64 decodes an image submitted as a base64 string or data URL,
// verifies its size and sniffed content type, and writes it under a random
// name. Returns the public URL of the stored file.
func (s *Store) SaveBase64(data string) (string, error) {
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}
	data = strings.TrimSpace(data)
	if data == "" {
		return "", domain.Validation("empty image data")
	}

	// Reject before decoding; base64 inflates by 4/3.
	if len(data) > models.MaxUploadBytes*4/3+4 {
		return "", domain.Validation("image too large")
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", domain.Validation("image data is not valid base64")
	}
	if len(raw) > models.MaxUploadBytes {
		return "", domain.Validation("image too large")
	}

	contentType := http.DetectContentType(raw)
	ext, ok := extByType[contentType]
	if !ok {
		return "", domain.Validation("unsupported image type: " + contentType)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", err
	}

	return s.publicURL + "/" + name, nil
}
