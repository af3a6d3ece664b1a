package httptransport

import (
	"context"
	"net/http"

	"sirpo/internal/routing"
	"sirpo/pkg/platform/httputil"
)

// HandleNavigate handles POST /navigate: reconciles a navigation event
// against the current identity and returns the corrected state.
func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[navigateRequest](w, r, h.logger)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.reconcile(r.Context(), req.Path))
}

// reconcile runs the route reconciler for the current identity and applies
// its side effects: the redirect counter and the last-known section cache.
func (h *Handler) reconcile(ctx context.Context, path string) routing.Result {
	identity := h.sessions.Current()
	res := routing.Reconcile(path, identity)

	if res.Redirected && h.metrics != nil {
		h.metrics.RouteRedirects.Inc()
	}
	if res.SectionDenied && h.metrics != nil {
		h.metrics.SectionDenials.Inc()
	}
	if res.ActiveSection != "" {
		h.sessions.CacheSection(ctx, res.ActiveSection)
	}
	if res.AdminSection != "" {
		h.sessions.CacheAdminSection(ctx, res.AdminSection)
	}
	return res
}
