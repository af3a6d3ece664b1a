package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"sirpo/internal/accounts"
	"sirpo/internal/admission"
	"sirpo/internal/notify"
	"sirpo/internal/platform/config"
	"sirpo/internal/platform/httpserver"
	"sirpo/internal/platform/logger"
	"sirpo/internal/platform/metrics"
	platformredis "sirpo/internal/platform/redis"
	"sirpo/internal/session"
	"sirpo/internal/store"
	httptransport "sirpo/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	m := metrics.New()

	// Durable tier: redis when configured, process memory otherwise.
	var durable store.KV = store.NewMemory()
	var health httptransport.HealthChecker
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		durable = store.NewRedis(redisClient.Client)
		health = redisClient
		log.Info("durable tier backed by redis")
	} else {
		log.Warn("durable tier backed by process memory; sessions will not survive restarts")
	}
	kv := store.NewTiered(durable, store.NewMemory())

	sessions, err := session.NewManager(kv, session.WithLogger(log), session.WithMetrics(m))
	if err != nil {
		return err
	}

	accountStore, positionStore, registrationStore, closeDB, err := buildStores(cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	accountSvc, err := accounts.New(accountStore,
		accounts.WithLogger(log),
		accounts.WithMetrics(m),
	)
	if err != nil {
		return err
	}
	admissionSvc, err := admission.New(positionStore, registrationStore,
		admission.WithLogger(log),
		admission.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	handler := httptransport.NewHandler(httptransport.Config{
		Sessions:  sessions,
		Accounts:  accountSvc,
		Admission: admissionSvc,
		Bridge:    notify.NewBridge(kv, log),
		Tokens:    session.NewTokenIssuer(cfg.JWTSigningKey, 12*time.Hour),
		Logger:    log,
		Metrics:   m,
		Health:    health,
	})
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting sirpo portal", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildStores picks postgres-backed account and admission stores when a
// database is configured, falling back to in-memory stores for development.
func buildStores(cfg config.Server, log *slog.Logger) (accounts.Store, admission.PositionStore, admission.RegistrationStore, func(), error) {
	if cfg.PostgresURL == "" {
		log.Warn("no database configured; using in-memory stores")
		return accounts.NewInMemoryStore(),
			admission.NewInMemoryPositionStore(),
			admission.NewInMemoryRegistrationStore(),
			func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}
	return accounts.NewPostgresStore(db),
		admission.NewPostgresPositionStore(db),
		admission.NewPostgresRegistrationStore(db),
		func() { db.Close() }, nil
}
