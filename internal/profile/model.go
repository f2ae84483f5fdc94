package profile

import (
	"context"
	"time"
)

const (
	// CollectionUsers holds one profile document per account, keyed by uid.
	CollectionUsers = "users"
	// DocumentPathTemplate is the trigger path profile updates are delivered for.
	DocumentPathTemplate = CollectionUsers + "/{uid}"
	// FieldRole is the document attribute that drives the authorization claim.
	FieldRole = "role"
)

// Account is the identity-provider record handed to UserCreationSync.
type Account struct {
	UID         string
	Email       *string
	DisplayName *string
}

// Profile represents the persisted profile document stored in Firestore.
type Profile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       *string   `json:"email" firestore:"email"`
	DisplayName *string   `json:"displayName" firestore:"displayName"`
	Role        Role      `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// Snapshot is a point-in-time view of a profile document's fields.
// A nil Snapshot means the image was not supplied.
type Snapshot map[string]any

// RoleChange is the input of RoleClaimSync: the pre- and post-update images of users/{uid}.
type RoleChange struct {
	UID    string
	Before Snapshot
	After  Snapshot
}

// Outcome describes what SyncRoleClaim did.
type Outcome string

const (
	// OutcomeSkipped means one of the snapshots was missing.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeUnchanged means the role attribute did not change.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeClaimSet means the custom claim was written.
	OutcomeClaimSet Outcome = "claim_set"
)

// RoleSyncResult reports the outcome of a single RoleClaimSync invocation.
type RoleSyncResult struct {
	Outcome Outcome
	Claim   Role
}

// Repository persists profile documents.
type Repository interface {
	// CreateProfile writes the document at users/{uid}, replacing any existing one.
	// CreatedAt is ignored and assigned by the store.
	CreateProfile(ctx context.Context, profile Profile) error
}

// ClaimsWriter sets custom claims on an identity-provider account, replacing previous claims.
// *auth.Client from the Firebase Admin SDK satisfies it.
type ClaimsWriter interface {
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
}

// Service defines the two synchronization handlers.
type Service interface {
	CreateProfile(ctx context.Context, account Account) error
	SyncRoleClaim(ctx context.Context, change RoleChange) (RoleSyncResult, error)
}
