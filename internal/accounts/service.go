package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sirpo/internal/platform/metrics"
	"sirpo/internal/session"
	"sirpo/pkg/domain"
	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/sentinel"
)

// Service verifies portal credentials and produces the raw login records the
// session layer classifies. Wrong-credential responses are indistinguishable
// between unknown accounts and bad passwords.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	lockout *lockoutTracker
	clock   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics attaches portal metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
			s.lockout = newLockoutTracker(defaultMaxFailures, defaultLockoutWindow, clock)
		}
	}
}

// New constructs an accounts service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("account store is required")
	}
	svc := &Service{
		store: store,
		clock: time.Now,
	}
	svc.lockout = newLockoutTracker(defaultMaxFailures, defaultLockoutWindow, svc.clock)
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// LoginApplicant verifies applicant credentials and returns the raw login
// record for classification.
func (s *Service) LoginApplicant(ctx context.Context, email, password string) (session.LoginRecord, error) {
	if email == "" || password == "" {
		return session.LoginRecord{}, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	if s.lockout.Locked(email) {
		return session.LoginRecord{}, dErrors.New(dErrors.CodeUnavailable, "account temporarily locked")
	}

	account, err := s.store.FindApplicantByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		// Administrative accounts occasionally arrive through the applicant
		// form; their records carry the numeric user type so classification
		// downstream resolves them as administrators.
		return s.adminThroughApplicantForm(ctx, email, password)
	}
	if err != nil {
		return session.LoginRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch account")
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return session.LoginRecord{}, s.fail(ctx, email)
	}

	s.lockout.Clear(email)
	return session.LoginRecord{
		ID:          int64(account.ID),
		DisplayName: account.DisplayName,
		Email:       account.Email,
	}, nil
}

func (s *Service) adminThroughApplicantForm(ctx context.Context, identifier, password string) (session.LoginRecord, error) {
	account, err := s.store.FindAdministratorByUsername(ctx, identifier)
	if errors.Is(err, sentinel.ErrNotFound) {
		return session.LoginRecord{}, s.fail(ctx, identifier)
	}
	if err != nil {
		return session.LoginRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch account")
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return session.LoginRecord{}, s.fail(ctx, identifier)
	}

	s.lockout.Clear(identifier)
	return session.LoginRecord{
		DisplayName:     account.DisplayName,
		UserType:        session.UserTypeFor(account.Role),
		UserID:          account.UserID.String(),
		Role:            account.Role.String(),
		ZonalOfficeID:   int64(account.ZonalOfficeID),
		ZonalOfficeName: account.ZonalOfficeName,
	}, nil
}

// LoginAdministrator verifies administrator credentials. The record carries
// the numeric user type so classification resolves it as administrative.
func (s *Service) LoginAdministrator(ctx context.Context, username, password string) (session.LoginRecord, error) {
	if username == "" || password == "" {
		return session.LoginRecord{}, dErrors.New(dErrors.CodeBadRequest, "username and password are required")
	}
	if s.lockout.Locked(username) {
		return session.LoginRecord{}, dErrors.New(dErrors.CodeUnavailable, "account temporarily locked")
	}

	account, err := s.store.FindAdministratorByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return session.LoginRecord{}, s.fail(ctx, username)
	}
	if err != nil {
		return session.LoginRecord{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch account")
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return session.LoginRecord{}, s.fail(ctx, username)
	}

	s.lockout.Clear(username)
	return session.LoginRecord{
		DisplayName:     account.DisplayName,
		UserType:        session.UserTypeFor(account.Role),
		UserID:          account.UserID.String(),
		Role:            account.Role.String(),
		ZonalOfficeID:   int64(account.ZonalOfficeID),
		ZonalOfficeName: account.ZonalOfficeName,
	}, nil
}

// CVFor resolves the applicant's curriculum id, zero when none is registered.
func (s *Service) CVFor(ctx context.Context, applicantID domain.ApplicantID) (domain.CVID, error) {
	if applicantID.IsZero() {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "an authenticated applicant session is required")
	}
	account, err := s.store.FindApplicantByID(ctx, applicantID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch account")
	}
	return account.CVID, nil
}

func (s *Service) fail(ctx context.Context, identifier string) error {
	if s.lockout.RecordFailure(identifier) {
		if s.metrics != nil {
			s.metrics.AccountLockouts.Inc()
		}
		s.logger.WarnContext(ctx, "account locked after repeated login failures",
			"identifier", identifier,
		)
	}
	return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
}
