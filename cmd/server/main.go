package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/focusnest/identity-sync/internal/config"
	"github.com/focusnest/identity-sync/internal/firebaseapp"
	"github.com/focusnest/identity-sync/internal/httpapi"
	sharedauth "github.com/focusnest/identity-sync/internal/platform/auth"
	"github.com/focusnest/identity-sync/internal/platform/logging"
	sharedserver "github.com/focusnest/identity-sync/internal/platform/server"
	"github.com/focusnest/identity-sync/internal/profile"
)

const serviceName = "identity-sync"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("identity-sync: no .env file found, relying on system env vars")
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config error: %w", err))
	}

	logger := logging.NewLogger(serviceName)

	repo, claims, cleanup, err := newBackends(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("backend init error: %w", err))
	}
	defer cleanup()

	profileService, err := profile.NewService(repo, claims)
	if err != nil {
		panic(fmt.Errorf("profile service init error: %w", err))
	}

	verifier, err := sharedauth.NewVerifier(sharedauth.Config{
		Mode:           cfg.Auth.Mode,
		Audience:       cfg.Auth.Audience,
		ServiceAccount: cfg.Auth.ServiceAccount,
	})
	if err != nil {
		panic(fmt.Errorf("auth verifier error: %w", err))
	}

	router := sharedserver.NewRouter(serviceName, func(r chi.Router) {
		r.Handle("/metrics", promhttp.Handler())

		r.Group(func(r chi.Router) {
			r.Use(sharedauth.Middleware(verifier))

			httpapi.RegisterRoutes(r, profileService, logger)
		})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("backends ready", "datastore", string(cfg.DataStore), "authMode", string(cfg.Auth.Mode))
	if err := sharedserver.Run(ctx, srv, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

func newBackends(ctx context.Context, cfg config.Config) (profile.Repository, profile.ClaimsWriter, func(), error) {
	switch cfg.DataStore {
	case config.DataStoreFirestore:
		app, err := firebaseapp.New(ctx, firebaseapp.Config{
			ProjectID:             cfg.GCPProjectID,
			CredentialsFile:       cfg.Firebase.CredentialsFile,
			FirestoreEmulatorHost: cfg.Firebase.FirestoreEmulatorHost,
			AuthEmulatorHost:      cfg.Firebase.AuthEmulatorHost,
		})
		if err != nil {
			return nil, nil, nil, err
		}

		cleanup := func() {
			_ = app.Close()
		}
		return profile.NewFirestoreRepository(app.Firestore), app.Auth, cleanup, nil
	default:
		return profile.NewMemoryRepository(nil), profile.NewMemoryClaims(), func() {}, nil
	}
}
