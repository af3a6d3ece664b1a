package routing

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"sirpo/internal/session"
	"sirpo/pkg/domain"
)

type ReconcilerSuite struct {
	suite.Suite
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func applicantIdentity() session.Identity {
	return session.ForApplicant(session.Applicant{ID: 7, Email: "a@example.com"})
}

func adminIdentity(role domain.AdminRole) session.Identity {
	return session.ForAdministrator(session.Administrator{
		Role:   role,
		UserID: domain.NewAdminUserID(),
	})
}

func (s *ReconcilerSuite) TestUnauthenticated() {
	none := session.None()

	s.Run("neutral root stays put with selector unset", func() {
		res := Reconcile(PathRoot, none)
		s.Equal(PathRoot, res.Path)
		s.Equal(SessionTypeUnset, res.SessionType)
		s.False(res.Redirected)
	})

	s.Run("any admin path forces the admin login", func() {
		for _, path := range []string{PathAdminPrefix, "/admin/registrations", "/admin/users/5", "/admin/whatever"} {
			res := Reconcile(path, none)
			s.Equal(PathAdminLogin, res.Path, path)
			s.Equal(SessionTypeAdministrator, res.SessionType, path)
			s.True(res.Redirected, path)
		}
	})

	s.Run("admin login itself does not redirect", func() {
		res := Reconcile(PathAdminLogin, none)
		s.Equal(PathAdminLogin, res.Path)
		s.False(res.Redirected)
	})

	s.Run("auth sub-views map from their paths", func() {
		s.Equal(AuthViewLogin, Reconcile(PathLogin, none).AuthView)
		s.Equal(AuthViewRegister, Reconcile(PathRegister, none).AuthView)
		s.Equal(AuthViewRecovery, Reconcile(PathRecovery, none).AuthView)
	})

	s.Run("other applicant paths fall back to the canonical login", func() {
		for _, path := range []string{PathCV, PathPositions, "/perfiles", "/unknown"} {
			res := Reconcile(path, none)
			s.Equal(PathLogin, res.Path, path)
			s.Equal(SessionTypeApplicant, res.SessionType, path)
			s.Equal(AuthViewLogin, res.AuthView, path)
			s.True(res.Redirected, path)
		}
	})
}

func (s *ReconcilerSuite) TestAdministrator() {
	s.Run("off-prefix and bare admin root land on the default section", func() {
		admin := adminIdentity(domain.AdminRoleSuperAdmin)
		for _, path := range []string{PathRoot, PathLogin, PathCV, PathAdminPrefix} {
			res := Reconcile(path, admin)
			s.Equal("/admin/registrations", res.Path, path)
			s.Equal(AdminSectionRegistrations, res.AdminSection, path)
			s.True(res.Redirected, path)
			s.False(res.SectionDenied, path)
		}
	})

	s.Run("allowed section passes through untouched", func() {
		res := Reconcile("/admin/users", adminIdentity(domain.AdminRoleDateOfficer))
		s.Equal("/admin/users", res.Path)
		s.Equal(AdminSectionUsers, res.AdminSection)
		s.False(res.Redirected)
	})

	s.Run("date officer keeps privileged sections", func() {
		admin := adminIdentity(domain.AdminRoleDateOfficer)
		for _, slug := range []string{AdminSectionServices, AdminSectionTemplates, AdminSectionDeclarations, AdminSectionUsers} {
			res := Reconcile(AdminSectionPath(slug), admin)
			s.Equal(slug, res.AdminSection, slug)
			s.False(res.Redirected, slug)
		}
	})

	s.Run("coordinator requesting templates is rewritten to registrations", func() {
		res := Reconcile("/admin/templates", adminIdentity(domain.AdminRoleCoordinator))
		s.Equal("/admin/registrations", res.Path)
		s.Equal(AdminSectionRegistrations, res.AdminSection)
		s.True(res.Redirected)
		s.True(res.SectionDenied)
	})

	s.Run("only gate denials carry the denied flag", func() {
		res := Reconcile("/admin/services", adminIdentity(domain.AdminRoleSuperAdmin))
		s.False(res.SectionDenied)

		res = Reconcile("/admin/secrets", adminIdentity(domain.AdminRoleSuperAdmin))
		s.True(res.SectionDenied)

		res = Reconcile("/admin/users", session.None())
		s.False(res.SectionDenied, "unauthenticated redirect is not a gate denial")
	})

	s.Run("uaba officer is treated like coordinator by the gate", func() {
		res := Reconcile("/admin/users", adminIdentity(domain.AdminRoleUabaOfficer))
		s.Equal("/admin/registrations", res.Path)
		s.True(res.Redirected)
	})

	s.Run("legacy slugs remap before the gate", func() {
		admin := adminIdentity(domain.AdminRoleSuperAdmin)

		res := Reconcile("/admin/applications/42", admin)
		s.Equal("/admin/registrations/42", res.Path)
		s.Equal(AdminSectionRegistrations, res.AdminSection)
		s.True(res.Redirected)

		res = Reconcile("/admin/profiles", admin)
		s.Equal("/admin/services", res.Path)
		s.Equal(AdminSectionServices, res.AdminSection)

		res = Reconcile("/admin/positions", admin)
		s.Equal("/admin/services", res.Path)
	})

	s.Run("remapped legacy slug still passes the gate for coordinator", func() {
		// profiles remaps to services, which a coordinator may not see.
		res := Reconcile("/admin/profiles", adminIdentity(domain.AdminRoleCoordinator))
		s.Equal("/admin/registrations", res.Path)
	})

	s.Run("unknown section is denied for every role", func() {
		res := Reconcile("/admin/secrets", adminIdentity(domain.AdminRoleSuperAdmin))
		s.Equal("/admin/registrations", res.Path)
		s.True(res.Redirected)
	})

	s.Run("unresolved role fails open", func() {
		admin := session.ForAdministrator(session.Administrator{UserID: domain.NewAdminUserID()})
		res := Reconcile("/admin/users", admin)
		s.Equal("/admin/users", res.Path)
		s.False(res.Redirected)
	})
}

func (s *ReconcilerSuite) TestApplicant() {
	applicant := applicantIdentity()

	s.Run("admin paths land on the applicant default", func() {
		for _, path := range []string{PathAdminPrefix, "/admin/registrations", PathAdminLogin} {
			res := Reconcile(path, applicant)
			s.Equal(PathCV, res.Path, path)
			s.Equal(SectionCV, res.ActiveSection, path)
			s.True(res.Redirected, path)
		}
	})

	s.Run("stale applications path lands on the applicant default", func() {
		res := Reconcile("/applications/42", applicant)
		s.Equal(PathCV, res.Path)
		s.Equal(SectionCV, res.ActiveSection)
		s.True(res.Redirected)
	})

	s.Run("cv and positions set the active section", func() {
		res := Reconcile("/cv/experiencia", applicant)
		s.Equal("/cv/experiencia", res.Path)
		s.Equal(SectionCV, res.ActiveSection)
		s.False(res.Redirected)

		res = Reconcile(PathPositions, applicant)
		s.Equal(SectionPositions, res.ActiveSection)
		s.False(res.Redirected)
	})

	s.Run("legacy profiles path rewrites to positions", func() {
		res := Reconcile("/perfiles/3", applicant)
		s.Equal("/convocatorias/3", res.Path)
		s.Equal(SectionPositions, res.ActiveSection)
		s.True(res.Redirected)
	})

	s.Run("root and auth paths land on the applicant default", func() {
		for _, path := range []string{PathRoot, PathLogin, PathRegister} {
			res := Reconcile(path, applicant)
			s.Equal(PathCV, res.Path, path)
			s.True(res.Redirected, path)
		}
	})
}

// TestIdempotence feeds every reconciled path back through the reconciler
// and requires a fixed point for every identity/path pair.
func (s *ReconcilerSuite) TestIdempotence() {
	identities := map[string]session.Identity{
		"unauthenticated": session.None(),
		"applicant":       applicantIdentity(),
		"coordinator":     adminIdentity(domain.AdminRoleCoordinator),
		"super_admin":     adminIdentity(domain.AdminRoleSuperAdmin),
		"date_officer":    adminIdentity(domain.AdminRoleDateOfficer),
		"uaba_officer":    adminIdentity(domain.AdminRoleUabaOfficer),
	}
	paths := []string{
		PathRoot, PathLogin, PathRegister, PathRecovery,
		PathCV, "/cv/experiencia", PathPositions, "/convocatorias/9",
		"/perfiles", "/perfiles/3", "/applications/42",
		PathAdminPrefix, PathAdminLogin,
		"/admin/registrations", "/admin/services", "/admin/templates",
		"/admin/declarations", "/admin/users", "/admin/applications/42",
		"/admin/profiles", "/admin/positions", "/admin/secrets",
		"/unknown", "",
	}

	for name, identity := range identities {
		for _, path := range paths {
			first := Reconcile(path, identity)
			second := Reconcile(first.Path, identity)

			s.Equal(first.Path, second.Path, "%s at %q", name, path)
			s.Equal(first.ActiveSection, second.ActiveSection, "%s at %q", name, path)
			s.Equal(first.AdminSection, second.AdminSection, "%s at %q", name, path)
			s.False(second.Redirected, "%s at %q must reach a fixed point", name, path)
		}
	}
}
