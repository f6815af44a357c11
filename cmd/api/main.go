package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"pet-tag-registry/internal/adapters/auth/statictoken"
	"pet-tag-registry/internal/adapters/notify/webhook"
	"pet-tag-registry/internal/adapters/storage/postgres"
	"pet-tag-registry/internal/platform/config"
	"pet-tag-registry/internal/platform/logger"
	"pet-tag-registry/internal/ports/auth"
	"pet-tag-registry/internal/ports/notify"
	"pet-tag-registry/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	// Sin ADMIN_TOKEN => modo dev (headers X-Debug-*)
	var verifier auth.AuthVerifier
	if cfg.AdminToken != "" {
		v, err := statictoken.NewVerifier(cfg.AdminToken)
		if err != nil {
			log.Fatalf("auth: %v", err)
		}
		verifier = v
	} else {
		lg.Warn("admin token not set, running in dev mode", nil)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.NotifyWebhookURL != "" {
		n, err := webhook.New(cfg.NotifyWebhookURL, lg)
		if err != nil {
			log.Fatalf("webhook: %v", err)
		}
		notifier = n
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Notifier:     notifier,
		Log:          lg,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": cfg.Addr(), "storage": storageKind(db)})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func storageKind(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
