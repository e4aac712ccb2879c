package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "a1.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/a1.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "a1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(got))
}

func TestLocalStoreRejectsPaths(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../escape.png", []byte("x"), "image/png")
	assert.Error(t, err)
}
