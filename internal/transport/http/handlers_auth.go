package httptransport

import (
	"net/http"
	"time"

	"sirpo/internal/notify"
	"sirpo/internal/routing"
	"sirpo/internal/session"
	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/httputil"
)

// HandleApplicantLogin handles POST /auth/applicant/login. The login record
// is classified before any persistence decision: an administrative account
// arriving through the applicant form is persisted under the administrator
// schema and retention rules.
func (h *Handler) HandleApplicantLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.Decode[applicantLoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.accounts.LoginApplicant(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	identity := session.Classify(record)
	token, err := h.tokens.Issue(identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	switch identity.Kind {
	case session.KindAdministrator:
		identity.Administrator.Token = token
		err = h.sessions.LoginAdministrator(ctx, identity.Administrator)
	default:
		identity.Applicant.Token = token
		err = h.sessions.LoginApplicant(ctx, identity.Applicant, req.Remember)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.markSession()
	h.countLogin(identity.Kind)
	h.logDuration(ctx, "applicant login", start, "kind", identity.Kind, "remember", req.Remember)

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		sessionResponse: toSessionResponse(identity),
		Token:           token,
		Navigation:      h.reconcile(ctx, routing.PathRoot),
	})
}

// HandleAdminLogin handles POST /auth/admin/login.
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	req, ok := httputil.Decode[adminLoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.accounts.LoginAdministrator(ctx, req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	identity := session.Classify(record)
	if identity.Kind != session.KindAdministrator {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))
		return
	}
	token, err := h.tokens.Issue(identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	identity.Administrator.Token = token

	if err := h.sessions.LoginAdministrator(ctx, identity.Administrator); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.markSession()
	h.countLogin(session.KindAdministrator)
	h.logDuration(ctx, "administrator login", start,
		"role", identity.Administrator.Role,
		"user_id", identity.Administrator.UserID.String(),
	)

	httputil.WriteJSON(w, http.StatusOK, loginResponse{
		sessionResponse: toSessionResponse(identity),
		Token:           token,
		Navigation:      h.reconcile(ctx, routing.PathAdminPrefix),
	})
}

// HandleLogout handles POST /auth/logout: wipes the persisted session from
// both tiers and posts the one-shot notice for the next load.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.sessions.Current().IsAuthenticated() {
		h.markSession()
		if err := h.bridge.Post(ctx, notify.Notice{
			Type:    notify.NoticeSuccess,
			Message: "your session has ended",
		}); err != nil {
			h.logger.WarnContext(ctx, "logout notice post failed", "error", err)
		}
	}

	if err := h.sessions.Logout(ctx); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSession handles GET /session: rehydrates the persisted identity.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	identity := h.sessions.Rehydrate(r.Context())
	if identity.IsAuthenticated() {
		h.markSession()
	}
	httputil.WriteJSON(w, http.StatusOK, toSessionResponse(identity))
}

// HandleNotice handles GET /notice: consumes the one-shot notice.
func (h *Handler) HandleNotice(w http.ResponseWriter, r *http.Request) {
	hadPrior := h.hadSession.Load() || h.sessions.Current().IsAuthenticated()
	notice, ok := h.bridge.Consume(r.Context(), hadPrior)
	resp := noticeResponse{}
	if ok {
		resp.Notice = &notice
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) countLogin(kind session.Kind) {
	if h.metrics != nil {
		h.metrics.Logins.WithLabelValues(string(kind)).Inc()
	}
}
