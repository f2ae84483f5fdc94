// Package firebaseapp owns the process-wide Firebase Admin clients. They are created
// once at startup, before any handler is registered, and closed on shutdown.
package firebaseapp

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config carries the project and connection settings for the Admin SDK.
type Config struct {
	ProjectID             string
	CredentialsFile       string
	FirestoreEmulatorHost string
	AuthEmulatorHost      string
}

// App bundles the clients the synchronization handlers depend on.
type App struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// New initializes the Firebase app and its Firestore and Auth clients.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}

	if err := exportEmulatorHost("FIRESTORE_EMULATOR_HOST", cfg.FirestoreEmulatorHost); err != nil {
		return nil, err
	}
	if err := exportEmulatorHost("FIREBASE_AUTH_EMULATOR_HOST", cfg.AuthEmulatorHost); err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	return &App{Firestore: fs, Auth: authClient}, nil
}

// Close releases the Firestore connection. The Auth client holds no resources.
func (a *App) Close() error {
	if a == nil || a.Firestore == nil {
		return nil
	}
	return a.Firestore.Close()
}

func clientOptions(cfg Config) []option.ClientOption {
	switch {
	case cfg.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
	case cfg.FirestoreEmulatorHost != "" && cfg.AuthEmulatorHost != "":
		// Emulators accept unauthenticated traffic; skip the ADC lookup entirely.
		return []option.ClientOption{option.WithoutAuthentication()}
	default:
		return nil
	}
}

func exportEmulatorHost(name, value string) error {
	if value == "" {
		return nil
	}
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}
