package routing

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"sirpo/pkg/domain"
)

type RoleGateSuite struct {
	suite.Suite
}

func TestRoleGateSuite(t *testing.T) {
	suite.Run(t, new(RoleGateSuite))
}

func (s *RoleGateSuite) TestIsSectionAllowed() {
	allRoles := []domain.AdminRole{
		domain.AdminRoleCoordinator,
		domain.AdminRoleSuperAdmin,
		domain.AdminRoleDateOfficer,
		domain.AdminRoleUabaOfficer,
	}

	s.Run("registrations is visible to every role", func() {
		for _, role := range allRoles {
			s.True(IsSectionAllowed(AdminSectionRegistrations, role), role)
		}
	})

	s.Run("privileged sections need super admin or date officer", func() {
		privileged := []string{AdminSectionServices, AdminSectionTemplates, AdminSectionDeclarations, AdminSectionUsers}
		for _, section := range privileged {
			s.True(IsSectionAllowed(section, domain.AdminRoleSuperAdmin), section)
			s.True(IsSectionAllowed(section, domain.AdminRoleDateOfficer), section)
			s.False(IsSectionAllowed(section, domain.AdminRoleCoordinator), section)
			s.False(IsSectionAllowed(section, domain.AdminRoleUabaOfficer), section)
		}
	})

	s.Run("unknown sections are denied for every role", func() {
		for _, role := range allRoles {
			s.False(IsSectionAllowed("billing", role), role)
		}
	})

	s.Run("unresolved role fails open", func() {
		s.True(IsSectionAllowed(AdminSectionUsers, ""))
		s.True(IsSectionAllowed("billing", ""))
	})
}

func (s *RoleGateSuite) TestFallbackSection() {
	for _, role := range []domain.AdminRole{
		domain.AdminRoleCoordinator,
		domain.AdminRoleSuperAdmin,
		domain.AdminRoleDateOfficer,
		domain.AdminRoleUabaOfficer,
		"",
	} {
		s.Equal(AdminSectionRegistrations, FallbackSection(role))
	}
}
