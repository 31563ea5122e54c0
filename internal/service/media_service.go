package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/storage"
)

const (
	// maxUploadBytes is the fixed upload cap (10 MB).
	maxUploadBytes = 10_000_000
	// mediaFolder prefixes every stored object key.
	mediaFolder = "modern-blog"
)

// allowedFormats maps accepted file extensions to their content types.
var allowedFormats = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// UploadResult is the stable location of a stored media object.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// MediaService stores uploaded media in the external object store.
type MediaService interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64) (*UploadResult, error)
}

type mediaService struct {
	store   storage.ObjectStorage
	baseURL string
}

// NewMediaService creates a new media service. baseURL is the public
// base URL stored objects are served from.
func NewMediaService(store storage.ObjectStorage, baseURL string) MediaService {
	return &mediaService{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload validates format and size, stores the object under a fresh
// key in the media folder and returns its URL and public id.
func (s *mediaService) Upload(ctx context.Context, filename string, r io.Reader, size int64) (*UploadResult, error) {
	if r == nil || size == 0 {
		return nil, apperrors.ErrNoFile
	}
	if size > maxUploadBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := allowedFormats[ext]
	if !ok {
		return nil, apperrors.ErrUnsupportedFormat
	}

	key := fmt.Sprintf("%s/%s%s", mediaFolder, uuid.New().String(), ext)
	if err := s.store.Put(ctx, key, r, size, contentType); err != nil {
		return nil, fmt.Errorf("store media: %w", err)
	}

	return &UploadResult{
		URL:      s.baseURL + "/" + key,
		PublicID: key,
	}, nil
}
