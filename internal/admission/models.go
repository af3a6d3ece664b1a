// Package admission decides whether an applicant may register for an open
// position, and records accepted registrations.
package admission

import (
	"time"

	"sirpo/pkg/domain"
)

// RegistrationStatus tracks a registration through administrative review.
// Transitions after creation are performed by administrators and are out of
// scope here; admission only ever creates records in StatusReceived.
type RegistrationStatus string

const (
	StatusReceived  RegistrationStatus = "received"
	StatusObserved  RegistrationStatus = "observed"
	StatusQualified RegistrationStatus = "qualified"
	StatusRejected  RegistrationStatus = "rejected"
)

// Position is an open slot applicants may register for (convocatoria).
type Position struct {
	ID            domain.PositionID    `json:"id"`
	Title         string               `json:"title"`
	ZonalOfficeID domain.ZonalOfficeID `json:"zonal_office_id"`
	Active        bool                 `json:"active"`
	OpensAt       time.Time            `json:"opens_at"`
	ClosesAt      time.Time            `json:"closes_at"`
}

// Open reports whether the position accepts registrations at now: it must be
// activated and inside its validity window.
func (p Position) Open(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.OpensAt) {
		return false
	}
	if !p.ClosesAt.IsZero() && now.After(p.ClosesAt) {
		return false
	}
	return true
}

// Registration is an applicant's submitted interest in a position
// (postulación). Immutable once created except for administrative status
// transitions.
type Registration struct {
	ID                 domain.RegistrationID `json:"id"`
	PositionID         domain.PositionID     `json:"position_id"`
	ApplicantID        domain.ApplicantID    `json:"applicant_id"`
	CVID               domain.CVID           `json:"cv_id"`
	Status             RegistrationStatus    `json:"status"`
	RegistrationNumber string                `json:"registration_number,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

// Decision is the admission verdict. Reason is user-facing and surfaced
// verbatim on denial.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Denial reasons surfaced to the user.
const (
	ReasonAlreadyRegistered = "already registered for this position"
	ReasonMissingCV         = "a curriculum must be registered before applying"
	ReasonMissingPosition   = "the position could not be resolved"
	ReasonPositionClosed    = "the position is not open for registration"
)

// CanRegister applies the duplicate rule: an applicant may hold at most one
// registration per position. Surrounding UI copy references a cap of two
// registrations per zonal office; that cap is not enforced anywhere in the
// source of truth and is deliberately not enforced here either.
func CanRegister(positionID domain.PositionID, existing []*Registration) Decision {
	registered := make(map[domain.PositionID]bool, len(existing))
	for _, reg := range existing {
		registered[reg.PositionID] = true
	}
	if registered[positionID] {
		return Decision{Allowed: false, Reason: ReasonAlreadyRegistered}
	}
	return Decision{Allowed: true}
}
