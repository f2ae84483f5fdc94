package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	sharederrors "github.com/focusnest/identity-sync/internal/platform/errors"
	"github.com/focusnest/identity-sync/internal/platform/server"
)

// Mode represents the authentication strategy applied to pushed events.
type Mode string

const (
	// ModeGoogle verifies the Google-signed OIDC token the event host attaches to every push.
	ModeGoogle Mode = "google"
	// ModeNoop skips signature verification (useful for local development and tests).
	ModeNoop Mode = "noop"
)

// Config captures the inputs required to initialize a verifier.
type Config struct {
	Mode           Mode
	Audience       string
	ServiceAccount string
}

// Principal is the caller that pushed the event, usually the host's service account.
type Principal struct {
	Subject string
	Email   string
}

// Verifier verifies a bearer token and returns the calling principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

var (
	errMissingAuthHeader = errors.New("authorization header missing")
	errInvalidAuthHeader = errors.New("authorization header is malformed")
)

type ctxKey string

const principalCtxKey ctxKey = "identity-sync:principal"

// Middleware enforces authentication for the wrapped handler using the provided verifier.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, err := tokenFromRequest(r)
			if err != nil {
				writeUnauthorized(w, r, err)
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeUnauthorized(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	server.WriteJSON(w, sharederrors.ToStatusCode(sharederrors.CodeUnauthorized), sharederrors.ErrorResponse{
		Code:      sharederrors.CodeUnauthorized,
		Message:   err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func tokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errInvalidAuthHeader
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errInvalidAuthHeader
	}

	return token, nil
}

// PrincipalFromContext extracts the authenticated caller from the request context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	value, ok := ctx.Value(principalCtxKey).(Principal)
	return value, ok
}

// NewVerifier constructs a Verifier matching the supplied configuration.
func NewVerifier(cfg Config) (Verifier, error) {
	switch cfg.Mode {
	case ModeGoogle:
		return newGoogleVerifier(cfg)
	case ModeNoop:
		return newNoopVerifier(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", cfg.Mode)
	}
}
