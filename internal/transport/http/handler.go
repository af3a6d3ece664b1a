// Package httptransport is the thin HTTP layer. Handlers delegate to the
// session, routing, accounts and admission services without embedding
// business logic.
package httptransport

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"sirpo/internal/accounts"
	"sirpo/internal/admission"
	"sirpo/internal/notify"
	"sirpo/internal/platform/metrics"
	"sirpo/internal/session"
)

// HealthChecker reports backing-store health, nil when not configured.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler wires portal endpoints to the domain services.
type Handler struct {
	sessions  *session.Manager
	accounts  *accounts.Service
	admission *admission.Service
	bridge    *notify.Bridge
	tokens    *session.TokenIssuer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	health    HealthChecker

	// hadSession flips once any authenticated session is observed in this
	// execution context; it gates the one-shot notice so first-time
	// anonymous visitors never see stale session toasts.
	hadSession atomic.Bool
}

// Config collects the handler's dependencies.
type Config struct {
	Sessions  *session.Manager
	Accounts  *accounts.Service
	Admission *admission.Service
	Bridge    *notify.Bridge
	Tokens    *session.TokenIssuer
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Health    HealthChecker
}

// NewHandler constructs the HTTP handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		sessions:  cfg.Sessions,
		accounts:  cfg.Accounts,
		admission: cfg.Admission,
		bridge:    cfg.Bridge,
		tokens:    cfg.Tokens,
		logger:    logger,
		metrics:   cfg.Metrics,
		health:    cfg.Health,
	}
}

func (h *Handler) markSession() {
	h.hadSession.Store(true)
}

func (h *Handler) logDuration(ctx context.Context, msg string, start time.Time, attrs ...any) {
	attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
	h.logger.InfoContext(ctx, msg, attrs...)
}
