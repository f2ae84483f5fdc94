package config

import (
	"fmt"
	"strings"

	sharedauth "github.com/focusnest/identity-sync/internal/platform/auth"
	"github.com/focusnest/identity-sync/internal/platform/envconfig"
)

// Config encapsulates the runtime configuration for the identity sync service.
type Config struct {
	Port         string `validate:"required"`
	GCPProjectID string
	DataStore    DataStore `validate:"oneof=memory firestore"`
	Auth         AuthConfig
	Firebase     FirebaseConfig
}

// DataStore enumerates supported backends for profiles and claims.
type DataStore string

const (
	// DataStoreMemory keeps profiles and claims in-memory (useful for local development/testing).
	DataStoreMemory DataStore = "memory"
	// DataStoreFirestore writes profiles to Firestore and claims to Firebase Authentication.
	DataStoreFirestore DataStore = "firestore"
)

// AuthConfig stores push authentication setup.
type AuthConfig struct {
	Mode           sharedauth.Mode `validate:"oneof=google noop"`
	Audience       string
	ServiceAccount string
}

// FirebaseConfig tailors the Firebase Admin clients.
type FirebaseConfig struct {
	FirestoreEmulatorHost string
	AuthEmulatorHost      string
	CredentialsFile       string
}

// Load reads environment variables into Config with validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.Get("GCP_PROJECT_ID", ""),
		DataStore:    DataStore(envconfig.GetLower("DATASTORE", string(DataStoreMemory))),
		Auth: AuthConfig{
			Mode:           sharedauth.Mode(envconfig.GetLower("AUTH_MODE", string(sharedauth.ModeNoop))),
			Audience:       envconfig.Get("PUSH_AUDIENCE", ""),
			ServiceAccount: envconfig.Get("PUSH_SERVICE_ACCOUNT", ""),
		},
		Firebase: FirebaseConfig{
			FirestoreEmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
			AuthEmulatorHost:      envconfig.Get("FIREBASE_AUTH_EMULATOR_HOST", ""),
			CredentialsFile:       envconfig.Get("GOOGLE_APPLICATION_CREDENTIALS_FILE", ""),
		},
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if err := envconfig.Validate(cfg); err != nil {
		return err
	}

	if cfg.DataStore == DataStoreFirestore && strings.TrimSpace(cfg.GCPProjectID) == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required when DATASTORE=firestore")
	}

	if cfg.Auth.Mode == sharedauth.ModeGoogle && strings.TrimSpace(cfg.Auth.Audience) == "" {
		return fmt.Errorf("PUSH_AUDIENCE is required when AUTH_MODE=google")
	}

	return nil
}
