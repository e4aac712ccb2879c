package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"sort"
	"strings"

	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/storage"
	"github.com/google/uuid"
)

const (
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 50 << 20
)

type mediaRule struct {
	exts     map[string]bool
	maxBytes int64
	label    string
}

var mediaRules = map[string]mediaRule{
	models.MediaImage: {
		exts:     map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true},
		maxBytes: MaxImageBytes,
		label:    "10MB",
	},
	models.MediaVideo: {
		exts:     map[string]bool{".mp4": true, ".mov": true, ".avi": true, ".webm": true},
		maxBytes: MaxVideoBytes,
		label:    "50MB",
	},
}

// MediaService checks extension and size, then hands the bytes to a Store.
type MediaService struct {
	store storage.Store
}

func NewMediaService(store storage.Store) *MediaService {
	return &MediaService{store: store}
}

func (s *MediaService) Upload(ctx context.Context, kind, filename string, r io.Reader) (*models.MediaUploadResponse, error) {
	rule, ok := mediaRules[kind]
	if !ok {
		return nil, apperr.Validation("unsupported media type")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !rule.exts[ext] {
		return nil, apperr.Validation(fmt.Sprintf("Invalid file type. Allowed: %s", allowedList(rule.exts)))
	}

	data, err := io.ReadAll(io.LimitReader(r, rule.maxBytes+1))
	if err != nil {
		return nil, apperr.Internal("Failed to read upload", err)
	}
	if int64(len(data)) > rule.maxBytes {
		return nil, apperr.Validation(fmt.Sprintf("File too large. Maximum size is %s", rule.label))
	}
	if len(data) == 0 {
		return nil, apperr.Validation("File is empty")
	}

	name := uuid.NewString() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.store.Put(ctx, name, data, contentType)
	if err != nil {
		return nil, apperr.Internal("Failed to store upload", err)
	}
	return &models.MediaUploadResponse{URL: url, Filename: name, MediaType: kind}, nil
}

func allowedList(exts map[string]bool) string {
	keys := make([]string, 0, len(exts))
	for ext := range exts {
		keys = append(keys, ext)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
