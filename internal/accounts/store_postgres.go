package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sirpo/pkg/domain"
	"sirpo/pkg/platform/sentinel"
)

// PostgresStore serves accounts from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed account store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindApplicantByEmail(ctx context.Context, email string) (*ApplicantAccount, error) {
	query := `
		SELECT id, email, display_name, password_hash, COALESCE(cv_id, 0)
		FROM applicant_accounts
		WHERE lower(email) = lower($1)
	`
	return s.scanApplicant(s.db.QueryRowContext(ctx, query, email))
}

func (s *PostgresStore) FindApplicantByID(ctx context.Context, id domain.ApplicantID) (*ApplicantAccount, error) {
	query := `
		SELECT id, email, display_name, password_hash, COALESCE(cv_id, 0)
		FROM applicant_accounts
		WHERE id = $1
	`
	return s.scanApplicant(s.db.QueryRowContext(ctx, query, int64(id)))
}

func (s *PostgresStore) scanApplicant(row *sql.Row) (*ApplicantAccount, error) {
	var a ApplicantAccount
	err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CVID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find applicant account: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) FindAdministratorByUsername(ctx context.Context, username string) (*AdministratorAccount, error) {
	query := `
		SELECT user_id, username, display_name, password_hash, role,
		       COALESCE(zonal_office_id, 0), COALESCE(zonal_office_name, '')
		FROM administrator_accounts
		WHERE lower(username) = lower($1)
	`
	var a AdministratorAccount
	var rawID string
	var role string
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&rawID, &a.Username, &a.DisplayName, &a.PasswordHash, &role,
		&a.ZonalOfficeID, &a.ZonalOfficeName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find administrator account: %w", err)
	}
	userID, err := domain.ParseAdminUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan administrator id: %w", err)
	}
	a.UserID = userID
	a.Role = domain.AdminRole(role)
	return &a, nil
}
