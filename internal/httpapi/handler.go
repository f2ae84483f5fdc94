package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/focusnest/identity-sync/internal/events"
	"github.com/focusnest/identity-sync/internal/metrics"
	"github.com/focusnest/identity-sync/internal/platform/dto"
	sharederrors "github.com/focusnest/identity-sync/internal/platform/errors"
	"github.com/focusnest/identity-sync/internal/platform/logging"
	"github.com/focusnest/identity-sync/internal/platform/server"
	"github.com/focusnest/identity-sync/internal/profile"
)

const (
	serviceTimeout = 30 * time.Second

	statusSynced = "synced"
)

// RegisterRoutes registers the event trigger routes.
func RegisterRoutes(r chi.Router, service profile.Service, logger *slog.Logger) {
	r.Route("/v1/events/users", func(r chi.Router) {
		r.Post("/created", userCreated(service, logger))
		r.Post("/updated", profileUpdated(service, logger))
	})
}

func userCreated(service profile.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		e, err := cehttp.NewEventFromHTTPRequest(r)
		if err != nil {
			rejectEvent(w, r, logger, metrics.EventUserCreated, started, err)
			return
		}
		log := logging.WithEvent(logger, e.ID(), e.Type())

		payload, err := events.DecodeUserCreated(e)
		if err != nil {
			rejectEvent(w, r, log, metrics.EventUserCreated, started, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		account := profile.Account{
			UID:         payload.UID,
			Email:       &payload.Email,
			DisplayName: &payload.DisplayName,
		}
		if err := service.CreateProfile(ctx, account); err != nil {
			failEvent(w, r, log, metrics.EventUserCreated, started, err, payload.UID)
			return
		}

		metrics.ObserveEvent(metrics.EventUserCreated, statusSynced, started)
		log.Info("profile created", slog.String("uid", payload.UID))
		server.WriteJSON(w, http.StatusOK, dto.SyncResponse{Status: statusSynced, UserID: payload.UID, Role: profile.RoleRegular.String()})
	}
}

func profileUpdated(service profile.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		e, err := cehttp.NewEventFromHTTPRequest(r)
		if err != nil {
			rejectEvent(w, r, logger, metrics.EventProfileUpdated, started, err)
			return
		}
		log := logging.WithEvent(logger, e.ID(), e.Type())

		change, err := decodeRoleChange(e)
		if err != nil {
			rejectEvent(w, r, log, metrics.EventProfileUpdated, started, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		result, err := service.SyncRoleClaim(ctx, change)
		if err != nil {
			failEvent(w, r, log, metrics.EventProfileUpdated, started, err, change.UID)
			return
		}

		outcome := string(result.Outcome)
		if result.Outcome == profile.OutcomeClaimSet {
			metrics.ClaimSet(result.Claim.String())
		}
		metrics.ObserveEvent(metrics.EventProfileUpdated, outcome, started)
		log.Info("role claim sync finished",
			slog.String("uid", change.UID),
			slog.String("outcome", outcome),
			slog.String("claim", result.Claim.String()),
		)
		server.WriteJSON(w, http.StatusOK, dto.SyncResponse{Status: outcome, UserID: change.UID, Role: result.Claim.String()})
	}
}

func decodeRoleChange(e *event.Event) (profile.RoleChange, error) {
	doc, err := events.DecodeDocumentUpdated(e, profile.DocumentPathTemplate)
	if err != nil {
		return profile.RoleChange{}, err
	}
	return profile.RoleChange{
		UID:    doc.Params["uid"],
		Before: doc.Before,
		After:  doc.After,
	}, nil
}

// rejectEvent answers events that can never succeed on redelivery.
func rejectEvent(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string, started time.Time, err error) {
	metrics.ObserveEvent(name, "rejected", started)
	logRequestError(r.Context(), logger, "event rejected", err, "")
	writeError(w, r, sharederrors.CodeBadRequest, err.Error())
}

// failEvent reports a downstream failure so the host can apply its redelivery policy.
func failEvent(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string, started time.Time, err error, uid string) {
	code := sharederrors.CodeInternal
	switch {
	case errors.Is(err, profile.ErrMissingUserID):
		code = sharederrors.CodeBadRequest
	case status.Code(err) == codes.Unavailable, errors.Is(err, context.DeadlineExceeded):
		code = sharederrors.CodeUnavailable
	}

	metrics.ObserveEvent(name, "failed", started)
	logRequestError(r.Context(), logger, "event handling failed", err, uid)
	writeError(w, r, code, err.Error())
}

func writeError(w http.ResponseWriter, r *http.Request, code, message string) {
	server.WriteJSON(w, sharederrors.ToStatusCode(code), sharederrors.ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func logRequestError(ctx context.Context, logger *slog.Logger, message string, err error, userID string) {
	if logger == nil || err == nil {
		return
	}
	attrs := []any{
		slog.String("uid", userID),
		slog.String("grpcCode", status.Code(err).String()),
		slog.Any("error", err),
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("requestId", reqID))
	}
	logger.Error(message, attrs...)
}
