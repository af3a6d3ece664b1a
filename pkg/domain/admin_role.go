package domain

import dErrors "sirpo/pkg/domain-errors"

// AdminRole is a domain value restricting which management sections an
// administrator may see.
//
// Usage: construct via ParseAdminRole at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type AdminRole string

// Supported administrator roles.
const (
	AdminRoleCoordinator AdminRole = "coordinator"
	AdminRoleSuperAdmin  AdminRole = "super_admin"
	AdminRoleDateOfficer AdminRole = "date_officer"
	AdminRoleUabaOfficer AdminRole = "uaba_officer"
)

// validAdminRoles is the single source of truth for valid roles.
var validAdminRoles = map[AdminRole]bool{
	AdminRoleCoordinator: true,
	AdminRoleSuperAdmin:  true,
	AdminRoleDateOfficer: true,
	AdminRoleUabaOfficer: true,
}

// ParseAdminRole constructs an AdminRole from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseAdminRole(s string) (AdminRole, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := AdminRole(s)
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return r, nil
}

// IsValid checks if the role is one of the supported enum values.
func (r AdminRole) IsValid() bool {
	return validAdminRoles[r]
}

// String returns the string representation of the role.
func (r AdminRole) String() string {
	return string(r)
}
