package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "modernblog/internal/errors"
)

// recordingStorage is an in-memory ObjectStorage recording the last Put.
type recordingStorage struct {
	putKey         string
	putContentType string
	putSize        int64
}

func (f *recordingStorage) EnsureBucket(ctx context.Context) error { return nil }

func (f *recordingStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f.putKey = key
	f.putContentType = contentType
	f.putSize = size
	return nil
}

func (f *recordingStorage) Delete(ctx context.Context, key string) error { return nil }

func (f *recordingStorage) Bucket() string { return "modern-blog" }

func TestMediaService_Upload(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		size          int64
		expectedError error
	}{
		{name: "png accepted", filename: "photo.png", size: 1024},
		{name: "jpg accepted", filename: "photo.JPG", size: 1024},
		{name: "gif accepted", filename: "anim.gif", size: 1024},
		{name: "webp rejected", filename: "photo.webp", size: 1024, expectedError: apperrors.ErrUnsupportedFormat},
		{name: "no extension rejected", filename: "photo", size: 1024, expectedError: apperrors.ErrUnsupportedFormat},
		{name: "oversized rejected", filename: "photo.png", size: 10_000_001, expectedError: apperrors.ErrFileTooLarge},
		{name: "empty file rejected", filename: "photo.png", size: 0, expectedError: apperrors.ErrNoFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStorage{}
			svc := NewMediaService(store, "https://media.example.com/")

			result, err := svc.Upload(context.Background(), tt.filename, bytes.NewReader([]byte("data")), tt.size)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				assert.Empty(t, store.putKey)
			} else {
				assert.NoError(t, err)
				assert.True(t, strings.HasPrefix(result.PublicID, "modern-blog/"))
				assert.Equal(t, "https://media.example.com/"+result.PublicID, result.URL)
				assert.Equal(t, result.PublicID, store.putKey)
			}
		})
	}
}

func TestMediaService_Upload_ContentType(t *testing.T) {
	store := &recordingStorage{}
	svc := NewMediaService(store, "https://media.example.com")

	_, err := svc.Upload(context.Background(), "photo.png", bytes.NewReader([]byte("data")), 4)
	assert.NoError(t, err)
	assert.Equal(t, "image/png", store.putContentType)
	assert.True(t, strings.HasSuffix(store.putKey, ".png"))
}
