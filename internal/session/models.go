// Package session owns the authenticated identity: a tagged union of
// applicant and administrator sessions, its persistence across the two
// retention tiers, and rehydration on startup.
package session

import (
	"sirpo/pkg/domain"
)

// Kind discriminates the identity union.
type Kind string

const (
	KindNone          Kind = ""
	KindApplicant     Kind = "applicant"
	KindAdministrator Kind = "administrator"
)

// Applicant is the end-user identity payload.
type Applicant struct {
	ID          domain.ApplicantID `json:"id"`
	DisplayName string             `json:"display_name"`
	Email       string             `json:"email"`
	Token       string             `json:"token,omitempty"`
}

// Administrator is the staff identity payload.
type Administrator struct {
	Role            domain.AdminRole     `json:"role"`
	UserID          domain.AdminUserID   `json:"user_id"`
	DisplayName     string               `json:"display_name"`
	ZonalOfficeID   domain.ZonalOfficeID `json:"zonal_office_id,omitempty"`
	ZonalOfficeName string               `json:"zonal_office_name,omitempty"`
	Token           string               `json:"token,omitempty"`
}

// Identity is the session identity: never applicant and administrator at
// once. The zero value is the logged-out identity.
type Identity struct {
	Kind          Kind
	Applicant     Applicant
	Administrator Administrator
}

// IsAuthenticated is derived, never stored: true iff the identity is an
// applicant with a non-zero id or an administrator with a non-zero user id.
func (i Identity) IsAuthenticated() bool {
	switch i.Kind {
	case KindApplicant:
		return !i.Applicant.ID.IsZero()
	case KindAdministrator:
		return !i.Administrator.UserID.IsZero()
	default:
		return false
	}
}

// Role returns the administrator role, empty for other kinds.
func (i Identity) Role() domain.AdminRole {
	if i.Kind == KindAdministrator {
		return i.Administrator.Role
	}
	return ""
}

// None is the logged-out identity.
func None() Identity {
	return Identity{}
}

// ForApplicant builds an applicant identity.
func ForApplicant(a Applicant) Identity {
	return Identity{Kind: KindApplicant, Applicant: a}
}

// ForAdministrator builds an administrator identity.
func ForAdministrator(a Administrator) Identity {
	return Identity{Kind: KindAdministrator, Administrator: a}
}
