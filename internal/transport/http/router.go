package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sirpo/internal/platform/middleware"
	"sirpo/internal/session"
	"sirpo/pkg/platform/httputil"
)

// NewRouter wires all portal endpoints. Registration endpoints sit behind
// bearer-token authentication; navigation and session rehydration stay open
// because reconciling anonymous navigation is part of their contract.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/applicant/login", h.HandleApplicantLogin)
	r.Post("/auth/admin/login", h.HandleAdminLogin)
	r.Post("/auth/logout", h.HandleLogout)

	r.Get("/session", h.HandleSession)
	r.Get("/notice", h.HandleNotice)
	r.Post("/navigate", h.HandleNavigate)

	r.Get("/positions", h.HandlePositions)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokenValidator{issuer: h.tokens}, h.logger))
		r.Post("/registrations/check", h.HandleRegistrationCheck)
		r.Post("/registrations", h.HandleRegister)
		r.Get("/registrations", h.HandleRegistrations)
	})

	r.Get("/healthz", h.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// tokenValidator adapts the session token issuer to the middleware contract.
type tokenValidator struct {
	issuer *session.TokenIssuer
}

func (v tokenValidator) Validate(tokenString string) (middleware.Claims, error) {
	claims, err := v.issuer.Validate(tokenString)
	if err != nil {
		return middleware.Claims{}, err
	}
	return middleware.Claims{
		Subject: claims.Subject,
		Kind:    claims.Kind,
		Role:    claims.Role,
	}, nil
}

// HandleHealth handles GET /healthz, pinging the durable tier when one is
// configured.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "durable tier unhealthy", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}
