package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app with its auth and storage clients.
// Storage is nil when no bucket is configured.
type App struct {
	FirebaseApp   *firebase.App
	AuthClient    *auth.Client
	StorageClient *storage.Client
	Bucket        string
}

// InitFirebase initializes the Firebase application and authentication client.
// A non-empty bucket also opens the Cloud Storage client used for media.
func InitFirebase(ctx context.Context, credentialsPath, bucket string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)

	var conf *firebase.Config
	if bucket != "" {
		conf = &firebase.Config{StorageBucket: bucket}
	}

	firebaseApp, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	app := &App{FirebaseApp: firebaseApp, AuthClient: authClient, Bucket: bucket}
	if bucket != "" {
		storageClient, err := firebaseApp.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting firebase storage client: %w", err)
		}
		app.StorageClient = storageClient
	}
	return app, nil
}
