package profile

import (
	"context"

	"cloud.google.com/go/firestore"
)

type firestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a new Firestore repository
func NewFirestoreRepository(client *firestore.Client) Repository {
	return &firestoreRepository{client: client}
}

func (r *firestoreRepository) CreateProfile(ctx context.Context, profile Profile) error {
	// Plain Set without merge options overwrites, so redelivery never duplicates.
	_, err := r.client.Collection(CollectionUsers).Doc(profile.UID).Set(ctx, profileDocument(profile))
	return err
}

// profileDocument is the exact field set written at users/{uid}; createdAt is left to
// the server clock.
func profileDocument(profile Profile) map[string]interface{} {
	return map[string]interface{}{
		"uid":         profile.UID,
		"email":       stringOrNull(profile.Email),
		"displayName": stringOrNull(profile.DisplayName),
		FieldRole:     string(profile.Role),
		"createdAt":   firestore.ServerTimestamp,
	}
}

func stringOrNull(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
