package profile

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

type service struct {
	repo   Repository
	claims ClaimsWriter
}

// NewService creates the profile synchronization service.
func NewService(repo Repository, claims ClaimsWriter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	if claims == nil {
		return nil, fmt.Errorf("claims writer is required")
	}
	return &service{repo: repo, claims: claims}, nil
}

func (s *service) CreateProfile(ctx context.Context, account Account) error {
	if strings.TrimSpace(account.UID) == "" {
		return ErrMissingUserID
	}

	profile := Profile{
		UID:         account.UID,
		Email:       nullable(account.Email),
		DisplayName: nullable(account.DisplayName),
		Role:        RoleRegular,
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return fmt.Errorf("create profile %s: %w", account.UID, err)
	}
	return nil
}

func (s *service) SyncRoleClaim(ctx context.Context, change RoleChange) (RoleSyncResult, error) {
	if change.Before == nil || change.After == nil {
		return RoleSyncResult{Outcome: OutcomeSkipped}, nil
	}

	if !roleChanged(change.Before, change.After) {
		return RoleSyncResult{Outcome: OutcomeUnchanged}, nil
	}

	if strings.TrimSpace(change.UID) == "" {
		return RoleSyncResult{}, ErrMissingUserID
	}

	role := ClassifyRole(change.After[FieldRole])
	if err := s.claims.SetCustomUserClaims(ctx, change.UID, role.Claims()); err != nil {
		return RoleSyncResult{}, fmt.Errorf("set custom claims for %s: %w", change.UID, err)
	}

	return RoleSyncResult{Outcome: OutcomeClaimSet, Claim: role}, nil
}

// roleChanged treats a missing attribute as distinct from any present value, including null.
func roleChanged(before, after Snapshot) bool {
	prev, hadPrev := before[FieldRole]
	next, hasNext := after[FieldRole]
	if hadPrev != hasNext {
		return true
	}
	return !reflect.DeepEqual(prev, next)
}

func nullable(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	v := *value
	return &v
}
