// Package routing implements the route reconciler: a pure state machine
// mapping the current path and session identity to a corrected path and
// active UI section. It performs no I/O; callers apply the resulting
// navigation and cache writes.
package routing

import "strings"

// Canonical paths recognized by the portal.
const (
	PathRoot          = "/"
	PathLogin         = "/login"
	PathRegister      = "/registro"
	PathRecovery      = "/recuperar"
	PathCV            = "/cv"
	PathPositions     = "/convocatorias"
	PathAdminPrefix   = "/admin"
	PathAdminLogin    = "/admin/login"
	PathAdminSections = "/admin/"
)

// Legacy applicant paths rewritten to their current equivalents.
const (
	legacyPathProfiles     = "/perfiles"
	legacyPathApplications = "/applications"
)

// Applicant sections.
const (
	SectionCV        = "cv"
	SectionPositions = "positions"
)

// Administrator section slugs.
const (
	AdminSectionRegistrations = "registrations"
	AdminSectionServices      = "services"
	AdminSectionTemplates     = "templates"
	AdminSectionDeclarations  = "declarations"
	AdminSectionUsers         = "users"
)

// legacyAdminSlugs remaps slugs from the previous navigation surface.
var legacyAdminSlugs = map[string]string{
	"applications": AdminSectionRegistrations,
	"profiles":     AdminSectionServices,
	"positions":    AdminSectionServices,
}

// AdminSectionPath builds the canonical path for an admin section slug.
func AdminSectionPath(section string) string {
	return PathAdminSections + section
}

// adminSlug extracts the section slug from an admin path: the segment after
// the admin prefix, with legacy slugs remapped. Empty for the bare prefix.
func adminSlug(path string) string {
	rest := strings.TrimPrefix(path, PathAdminPrefix)
	rest = strings.TrimPrefix(rest, "/")
	slug, _, _ := strings.Cut(rest, "/")
	if canonical, ok := legacyAdminSlugs[slug]; ok {
		return canonical
	}
	return slug
}

// underPrefix reports whether path is prefix itself or nested below it.
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
