package routing

import (
	"strings"

	"sirpo/internal/session"
)

// SessionType is the selector shown on the auth surface while logged out.
type SessionType string

const (
	SessionTypeUnset         SessionType = ""
	SessionTypeApplicant     SessionType = "applicant"
	SessionTypeAdministrator SessionType = "administrator"
)

// AuthView is the sub-view of the applicant auth surface.
type AuthView string

const (
	AuthViewNone     AuthView = ""
	AuthViewLogin    AuthView = "login"
	AuthViewRegister AuthView = "register"
	AuthViewRecovery AuthView = "recovery"
)

// Result is the reconciled navigation state. Redirected is true when Path
// differs from the input and the caller must replace the location;
// SectionDenied is true only when the redirect came from a role-gate denial.
type Result struct {
	Path          string
	SessionType   SessionType
	AuthView      AuthView
	ActiveSection string
	AdminSection  string
	Redirected    bool
	SectionDenied bool
}

// Reconcile maps (current path, identity) to the corrected navigation state.
// It is evaluated on every path change and every identity change, and is
// idempotent: feeding its output path back in yields the same result. No
// transition depends on prior navigation state beyond what the path encodes.
func Reconcile(path string, identity session.Identity) Result {
	path = normalize(path)

	if !identity.IsAuthenticated() {
		return reconcileUnauthenticated(path)
	}
	if identity.Kind == session.KindAdministrator {
		return reconcileAdministrator(path, identity)
	}
	return reconcileApplicant(path)
}

func reconcileUnauthenticated(path string) Result {
	if path == PathRoot {
		// Neutral landing: the session-type selector stays unset.
		return Result{Path: PathRoot}
	}

	if underPrefix(path, PathAdminPrefix) {
		if path == PathAdminLogin {
			return Result{Path: PathAdminLogin, SessionType: SessionTypeAdministrator}
		}
		return Result{Path: PathAdminLogin, SessionType: SessionTypeAdministrator, Redirected: true}
	}

	switch path {
	case PathLogin:
		return Result{Path: PathLogin, SessionType: SessionTypeApplicant, AuthView: AuthViewLogin}
	case PathRegister:
		return Result{Path: PathRegister, SessionType: SessionTypeApplicant, AuthView: AuthViewRegister}
	case PathRecovery:
		return Result{Path: PathRecovery, SessionType: SessionTypeApplicant, AuthView: AuthViewRecovery}
	default:
		return Result{Path: PathLogin, SessionType: SessionTypeApplicant, AuthView: AuthViewLogin, Redirected: true}
	}
}

func reconcileAdministrator(path string, identity session.Identity) Result {
	role := identity.Role()

	if !underPrefix(path, PathAdminPrefix) || path == PathAdminPrefix {
		return adminRedirect(AdminSectionRegistrations)
	}

	slug := adminSlug(path)
	if !IsSectionAllowed(slug, role) {
		res := adminRedirect(FallbackSection(role))
		res.SectionDenied = true
		return res
	}

	canonical := AdminSectionPath(slug)
	if rest := remainder(path); rest != "" {
		canonical += "/" + rest
	}
	return Result{
		Path:         canonical,
		SessionType:  SessionTypeAdministrator,
		AdminSection: slug,
		Redirected:   canonical != path,
	}
}

func adminRedirect(section string) Result {
	return Result{
		Path:         AdminSectionPath(section),
		SessionType:  SessionTypeAdministrator,
		AdminSection: section,
		Redirected:   true,
	}
}

func reconcileApplicant(path string) Result {
	switch {
	case underPrefix(path, PathAdminPrefix), underPrefix(path, legacyPathApplications):
		// Admin surface and the retired applications view both land on the
		// applicant default.
		return Result{Path: PathCV, SessionType: SessionTypeApplicant, ActiveSection: SectionCV, Redirected: true}
	case underPrefix(path, PathCV):
		return Result{Path: path, SessionType: SessionTypeApplicant, ActiveSection: SectionCV}
	case underPrefix(path, PathPositions):
		return Result{Path: path, SessionType: SessionTypeApplicant, ActiveSection: SectionPositions}
	case underPrefix(path, legacyPathProfiles):
		rewritten := PathPositions + strings.TrimPrefix(path, legacyPathProfiles)
		return Result{Path: rewritten, SessionType: SessionTypeApplicant, ActiveSection: SectionPositions, Redirected: true}
	default:
		return Result{Path: PathCV, SessionType: SessionTypeApplicant, ActiveSection: SectionCV, Redirected: true}
	}
}

// remainder returns the path segments after the admin section slug.
func remainder(path string) string {
	rest := strings.TrimPrefix(path, PathAdminPrefix)
	rest = strings.TrimPrefix(rest, "/")
	_, after, _ := strings.Cut(rest, "/")
	return after
}

// normalize strips a trailing slash (except the root) and defaults an empty
// path to the root.
func normalize(path string) string {
	if path == "" {
		return PathRoot
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = PathRoot
		}
	}
	return path
}
