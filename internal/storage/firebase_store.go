package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	fbstorage "firebase.google.com/go/v4/storage"
)

// FirebaseStore uploads objects to the Firebase default bucket under a
// fixed prefix.
type FirebaseStore struct {
	bucket *gcs.BucketHandle
	name   string
	prefix string
}

func NewFirebaseStore(client *fbstorage.Client, bucketName, prefix string) (*FirebaseStore, error) {
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketName, err)
	}
	return &FirebaseStore{bucket: bucket, name: bucketName, prefix: prefix}, nil
}

func (s *FirebaseStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	object := s.prefix + name
	w := s.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", object, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, object), nil
}
