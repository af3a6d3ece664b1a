// Package domain holds typed identifiers and enums shared across the portal.
// Construct enums via their Parse functions at trust boundaries; direct
// casting bypasses validation.
package domain

import (
	"github.com/google/uuid"
)

// ApplicantID identifies an applicant account. Zero means unauthenticated.
type ApplicantID int64

// IsZero reports whether the id is unset.
func (id ApplicantID) IsZero() bool { return id == 0 }

// PositionID identifies an open position (convocatoria).
type PositionID int64

func (id PositionID) IsZero() bool { return id == 0 }

// CVID identifies an applicant's curriculum record.
type CVID int64

func (id CVID) IsZero() bool { return id == 0 }

// ZonalOfficeID identifies the zonal office an administrator is scoped to.
type ZonalOfficeID int64

// AdminUserID identifies an administrator account. Zero UUID means
// unauthenticated.
type AdminUserID uuid.UUID

// NewAdminUserID mints a fresh administrator id.
func NewAdminUserID() AdminUserID {
	return AdminUserID(uuid.New())
}

// ParseAdminUserID parses an administrator id from its string form.
func ParseAdminUserID(s string) (AdminUserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return AdminUserID{}, err
	}
	return AdminUserID(u), nil
}

func (id AdminUserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

func (id AdminUserID) String() string { return uuid.UUID(id).String() }

// MarshalText keeps the JSON form a plain uuid string.
func (id AdminUserID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *AdminUserID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = AdminUserID(u)
	return nil
}

// RegistrationID identifies a submitted registration (postulación).
type RegistrationID uuid.UUID

// NewRegistrationID mints a fresh registration id.
func NewRegistrationID() RegistrationID {
	return RegistrationID(uuid.New())
}

// ParseRegistrationID parses a registration id from its string form.
func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return RegistrationID{}, err
	}
	return RegistrationID(u), nil
}

// MarshalText keeps the JSON form a plain uuid string.
func (id RegistrationID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *RegistrationID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = RegistrationID(u)
	return nil
}

func (id RegistrationID) String() string { return uuid.UUID(id).String() }
