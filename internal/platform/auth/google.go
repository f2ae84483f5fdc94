package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var errMissingSubject = errors.New("token missing subject claim")

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// googleVerifier validates Google-signed OIDC tokens attached by Eventarc and Pub/Sub push.
type googleVerifier struct {
	audience       string
	serviceAccount string
	validate       validateFunc
}

func newGoogleVerifier(cfg Config) (Verifier, error) {
	if cfg.Audience == "" {
		return nil, fmt.Errorf("push audience is required")
	}

	return &googleVerifier{
		audience:       cfg.Audience,
		serviceAccount: cfg.ServiceAccount,
		validate:       idtoken.Validate,
	}, nil
}

func (v *googleVerifier) Verify(ctx context.Context, token string) (Principal, error) {
	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return Principal{}, fmt.Errorf("token verification failed: %w", err)
	}

	if payload.Subject == "" {
		return Principal{}, errMissingSubject
	}

	email, _ := payload.Claims["email"].(string)
	if v.serviceAccount != "" {
		verified, _ := payload.Claims["email_verified"].(bool)
		if email != v.serviceAccount || !verified {
			return Principal{}, fmt.Errorf("token issued to unexpected principal %q", email)
		}
	}

	return Principal{Subject: payload.Subject, Email: email}, nil
}
