package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "http://localhost:8080")
	require.NoError(t, err)
	svc := NewMediaService(store)
	ctx := context.Background()

	resp, err := svc.Upload(ctx, models.MediaImage, "Sunrise.JPG", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, resp.MediaType)
	assert.True(t, strings.HasSuffix(resp.Filename, ".jpg"))
	assert.Equal(t, "http://localhost:8080/uploads/"+resp.Filename, resp.URL)
	_, err = os.Stat(filepath.Join(dir, resp.Filename))
	assert.NoError(t, err)

	_, err = svc.Upload(ctx, models.MediaImage, "clip.mp4", strings.NewReader("x"))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Upload(ctx, models.MediaVideo, "clip.mp4", strings.NewReader(""))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	tooBig := bytes.NewReader(make([]byte, MaxImageBytes+1))
	_, err = svc.Upload(ctx, models.MediaImage, "big.png", tooBig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10MB")
}
