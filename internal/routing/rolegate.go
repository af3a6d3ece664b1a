package routing

import "sirpo/pkg/domain"

// privilegedSections require an elevated role; the registrations section is
// visible to every role.
var privilegedSections = map[string]bool{
	AdminSectionServices:     true,
	AdminSectionTemplates:    true,
	AdminSectionDeclarations: true,
	AdminSectionUsers:        true,
}

// IsSectionAllowed decides whether an administrator role may see a section.
// An empty role means the role is not yet resolved; the gate fails open for
// that brief window and the reconciler re-runs once the role is known.
func IsSectionAllowed(section string, role domain.AdminRole) bool {
	if role == "" {
		return true
	}
	switch {
	case section == AdminSectionRegistrations:
		return true
	case privilegedSections[section]:
		return role == domain.AdminRoleSuperAdmin || role == domain.AdminRoleDateOfficer
	default:
		return false
	}
}

// FallbackSection names where a denied role lands. Every current role falls
// back to registrations; kept as a function so a future role can diverge
// without touching the reconciler.
func FallbackSection(role domain.AdminRole) string {
	return AdminSectionRegistrations
}
