package httptransport

import (
	"net/http"
	"strconv"
	"time"

	"sirpo/internal/admission"
	"sirpo/internal/platform/middleware"
	"sirpo/internal/session"
	"sirpo/pkg/domain"
	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/httputil"
)

// HandlePositions handles GET /positions. A fetch failure degrades to an
// empty list rather than blocking navigation.
func (h *Handler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filters := admission.PositionFilters{OpenOnly: r.URL.Query().Get("open") == "true"}
	if raw := r.URL.Query().Get("zonal_office_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid zonal_office_id"))
			return
		}
		filters.ZonalOfficeID = domain.ZonalOfficeID(id)
	}

	positions, err := h.admission.ListPositions(ctx, filters)
	if err != nil {
		h.logger.WarnContext(ctx, "position list fetch failed, degrading to empty", "error", err)
		positions = nil
	}
	if positions == nil {
		positions = []*admission.Position{}
	}
	httputil.WriteJSON(w, http.StatusOK, positionsResponse{Positions: positions})
}

// HandleRegistrationCheck handles POST /registrations/check: the
// initiation-time admission evaluation that picks the confirmation dialog.
func (h *Handler) HandleRegistrationCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicantID, ok := h.requireApplicant(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[registrationRequest](w, r, h.logger)
	if !ok {
		return
	}

	decision, err := h.admission.Check(ctx, applicantID, req.PositionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}

// HandleRegister handles POST /registrations: the final admission check and
// the registration write. The applicant's CV id is resolved fresh; a missing
// CV is a terminal failure reported to the user.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	applicantID, ok := h.requireApplicant(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[registrationRequest](w, r, h.logger)
	if !ok {
		return
	}

	cvID, err := h.accounts.CVFor(ctx, applicantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.admission.Register(ctx, applicantID, req.PositionID, cvID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logDuration(ctx, "registration submitted", start,
		"position_id", req.PositionID,
		"registration_number", reg.RegistrationNumber,
	)
	httputil.WriteJSON(w, http.StatusCreated, reg)
}

// HandleRegistrations handles GET /registrations for the current applicant.
// A fetch failure degrades to an empty list.
func (h *Handler) HandleRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	applicantID, ok := h.requireApplicant(w, r)
	if !ok {
		return
	}

	regs, err := h.admission.ListForApplicant(ctx, applicantID)
	if err != nil {
		h.logger.WarnContext(ctx, "registration list fetch failed, degrading to empty", "error", err)
		regs = nil
	}
	if regs == nil {
		regs = []*admission.Registration{}
	}
	httputil.WriteJSON(w, http.StatusOK, registrationsResponse{Registrations: regs})
}

func (h *Handler) requireApplicant(w http.ResponseWriter, r *http.Request) (domain.ApplicantID, bool) {
	// The bearer token's kind must agree with the session identity; an
	// administrator token never unlocks applicant endpoints.
	if claims := middleware.GetClaims(r.Context()); claims.Kind != string(session.KindApplicant) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "an authenticated applicant session is required"))
		return 0, false
	}
	identity := h.sessions.Current()
	if identity.Kind != session.KindApplicant || !identity.IsAuthenticated() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "an authenticated applicant session is required"))
		return 0, false
	}
	return identity.Applicant.ID, true
}
