// Package accounts backs the login collaborators: credential verification
// for applicant and administrator accounts, with lockout after repeated
// failures.
package accounts

import (
	"context"

	"sirpo/pkg/domain"
)

// ApplicantAccount is a stored end-user credential record. CVID is zero
// until the applicant registers a curriculum.
type ApplicantAccount struct {
	ID           domain.ApplicantID
	Email        string
	DisplayName  string
	PasswordHash []byte
	CVID         domain.CVID
}

// AdministratorAccount is a stored staff credential record.
type AdministratorAccount struct {
	UserID          domain.AdminUserID
	Username        string
	DisplayName     string
	PasswordHash    []byte
	Role            domain.AdminRole
	ZonalOfficeID   domain.ZonalOfficeID
	ZonalOfficeName string
}

// Store serves credential records. Lookups return sentinel.ErrNotFound
// (possibly wrapped) for unknown accounts.
type Store interface {
	FindApplicantByEmail(ctx context.Context, email string) (*ApplicantAccount, error)
	FindApplicantByID(ctx context.Context, id domain.ApplicantID) (*ApplicantAccount, error)
	FindAdministratorByUsername(ctx context.Context, username string) (*AdministratorAccount, error)
}
