package admission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sirpo/pkg/domain"
	"sirpo/pkg/platform/sentinel"
)

// PostgresPositionStore serves positions from PostgreSQL.
type PostgresPositionStore struct {
	db *sql.DB
}

// NewPostgresPositionStore constructs a PostgreSQL-backed position store.
func NewPostgresPositionStore(db *sql.DB) *PostgresPositionStore {
	return &PostgresPositionStore{db: db}
}

func (s *PostgresPositionStore) FindByID(ctx context.Context, id domain.PositionID) (*Position, error) {
	query := `
		SELECT id, title, zonal_office_id, active, opens_at, closes_at
		FROM positions
		WHERE id = $1
	`
	var p Position
	err := s.db.QueryRowContext(ctx, query, int64(id)).Scan(
		&p.ID, &p.Title, &p.ZonalOfficeID, &p.Active, &p.OpensAt, &p.ClosesAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find position: %w", err)
	}
	return &p, nil
}

func (s *PostgresPositionStore) List(ctx context.Context, filters PositionFilters) ([]*Position, error) {
	query := `
		SELECT id, title, zonal_office_id, active, opens_at, closes_at
		FROM positions
		WHERE ($1 = 0 OR zonal_office_id = $1)
		  AND (NOT $2 OR (active AND opens_at <= now() AND closes_at >= now()))
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, int64(filters.ZonalOfficeID), filters.OpenOnly)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var out []*Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Title, &p.ZonalOfficeID, &p.Active, &p.OpensAt, &p.ClosesAt); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return out, nil
}

// PostgresRegistrationStore persists registrations in PostgreSQL. A unique
// index on (position_id, applicant_id) backs the duplicate guard.
type PostgresRegistrationStore struct {
	db *sql.DB
}

// NewPostgresRegistrationStore constructs a PostgreSQL-backed registration store.
func NewPostgresRegistrationStore(db *sql.DB) *PostgresRegistrationStore {
	return &PostgresRegistrationStore{db: db}
}

func (s *PostgresRegistrationStore) Create(ctx context.Context, reg *Registration) error {
	query := `
		INSERT INTO registrations (id, position_id, applicant_id, cv_id, status, registration_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		reg.ID.String(), int64(reg.PositionID), int64(reg.ApplicantID), int64(reg.CVID),
		string(reg.Status), reg.RegistrationNumber, reg.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (s *PostgresRegistrationStore) ListByApplicant(ctx context.Context, applicantID domain.ApplicantID) ([]*Registration, error) {
	query := `
		SELECT id, position_id, applicant_id, cv_id, status, registration_number, created_at
		FROM registrations
		WHERE applicant_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, int64(applicantID))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []*Registration
	for rows.Next() {
		var reg Registration
		var rawID string
		if err := rows.Scan(&rawID, &reg.PositionID, &reg.ApplicantID, &reg.CVID, &reg.Status, &reg.RegistrationNumber, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		id, err := domain.ParseRegistrationID(rawID)
		if err != nil {
			return nil, fmt.Errorf("scan registration id: %w", err)
		}
		reg.ID = id
		out = append(out, &reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return out, nil
}
