package admission

import (
	"context"

	"sirpo/pkg/domain"
)

// PositionFilters narrows a position listing.
type PositionFilters struct {
	ZonalOfficeID domain.ZonalOfficeID
	OpenOnly      bool
}

// PositionStore serves the open-position catalog.
type PositionStore interface {
	// FindByID returns sentinel.ErrNotFound (possibly wrapped) for an
	// unknown position.
	FindByID(ctx context.Context, id domain.PositionID) (*Position, error)

	// List returns positions matching the filters.
	List(ctx context.Context, filters PositionFilters) ([]*Position, error)
}

// RegistrationStore persists accepted registrations.
type RegistrationStore interface {
	// Create persists a new registration. Returns sentinel.ErrConflict when
	// the applicant already holds a registration for the position; this is
	// the hard backstop behind the admission re-check.
	Create(ctx context.Context, reg *Registration) error

	// ListByApplicant returns the applicant's registrations, freshly read.
	ListByApplicant(ctx context.Context, applicantID domain.ApplicantID) ([]*Registration, error)
}
