package admission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sirpo/internal/platform/metrics"
	"sirpo/pkg/domain"
	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/sentinel"
)

// Service enforces admission control around registration writes. The
// duplicate rule is evaluated twice in the flow: once at initiation (Check,
// to pick the confirmation dialog) and once immediately before the write
// (Register), each time against a freshly fetched registration list.
type Service struct {
	positions     PositionStore
	registrations RegistrationStore
	logger        *slog.Logger
	metrics       *metrics.Metrics
	clock         func() time.Time
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
		}
	}
}

// New constructs an admission service.
func New(positions PositionStore, registrations RegistrationStore, opts ...Option) (*Service, error) {
	if positions == nil {
		return nil, fmt.Errorf("position store is required")
	}
	if registrations == nil {
		return nil, fmt.Errorf("registration store is required")
	}
	svc := &Service{
		positions:     positions,
		registrations: registrations,
		clock:         time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// Check evaluates the admission rules at initiation time so the caller can
// choose the confirmation dialog. Uses a fresh registration list, never a
// cached one.
func (s *Service) Check(ctx context.Context, applicantID domain.ApplicantID, positionID domain.PositionID) (Decision, error) {
	if applicantID.IsZero() {
		return Decision{}, dErrors.New(dErrors.CodeUnauthorized, "an authenticated applicant session is required")
	}
	if positionID.IsZero() {
		return Decision{Allowed: false, Reason: ReasonMissingPosition}, nil
	}

	position, err := s.positions.FindByID(ctx, positionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return Decision{Allowed: false, Reason: ReasonMissingPosition}, nil
	}
	if err != nil {
		return Decision{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch position")
	}
	if !position.Open(s.clock()) {
		return Decision{Allowed: false, Reason: ReasonPositionClosed}, nil
	}

	existing, err := s.registrations.ListByApplicant(ctx, applicantID)
	if err != nil {
		return Decision{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch registrations")
	}
	decision := CanRegister(positionID, existing)
	s.countDenial(decision)
	return decision, nil
}

// Register performs the final admission check and writes the registration.
// Missing CV, unresolved position, or an unauthenticated applicant are
// terminal failures reported to the user, never retried.
func (s *Service) Register(ctx context.Context, applicantID domain.ApplicantID, positionID domain.PositionID, cvID domain.CVID) (*Registration, error) {
	if applicantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "an authenticated applicant session is required")
	}
	if positionID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, ReasonMissingPosition)
	}
	if cvID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, ReasonMissingCV)
	}

	position, err := s.positions.FindByID(ctx, positionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, ReasonMissingPosition)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch position")
	}
	now := s.clock()
	if !position.Open(now) {
		return nil, dErrors.New(dErrors.CodeConflict, ReasonPositionClosed)
	}

	// Second evaluation of the duplicate rule, guarding the gap between
	// initiation and confirmation. The list is fetched fresh.
	existing, err := s.registrations.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch registrations")
	}
	if decision := CanRegister(positionID, existing); !decision.Allowed {
		s.countDenial(decision)
		return nil, dErrors.New(dErrors.CodeConflict, decision.Reason)
	}

	reg := &Registration{
		ID:                 domain.NewRegistrationID(),
		PositionID:         positionID,
		ApplicantID:        applicantID,
		CVID:               cvID,
		Status:             StatusReceived,
		RegistrationNumber: newRegistrationNumber(now),
		CreatedAt:          now,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Concurrent duplicate slipped between check and write.
			s.countDenial(Decision{Reason: ReasonAlreadyRegistered})
			return nil, dErrors.New(dErrors.CodeConflict, ReasonAlreadyRegistered)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create registration")
	}

	if s.metrics != nil {
		s.metrics.Registrations.Inc()
	}
	s.logger.InfoContext(ctx, "registration accepted",
		"registration_id", reg.ID.String(),
		"position_id", positionID,
		"applicant_id", applicantID,
		"registration_number", reg.RegistrationNumber,
	)
	return reg, nil
}

// ListForApplicant returns the applicant's registrations.
func (s *Service) ListForApplicant(ctx context.Context, applicantID domain.ApplicantID) ([]*Registration, error) {
	if applicantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "an authenticated applicant session is required")
	}
	regs, err := s.registrations.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch registrations")
	}
	return regs, nil
}

// ListPositions returns the filtered position catalog.
func (s *Service) ListPositions(ctx context.Context, filters PositionFilters) ([]*Position, error) {
	positions, err := s.positions.List(ctx, filters)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch positions")
	}
	return positions, nil
}

func (s *Service) countDenial(decision Decision) {
	if decision.Allowed || s.metrics == nil {
		return
	}
	s.metrics.AdmissionDenials.WithLabelValues(denialLabel(decision.Reason)).Inc()
}

func denialLabel(reason string) string {
	switch reason {
	case ReasonAlreadyRegistered:
		return "duplicate"
	case ReasonMissingCV:
		return "missing_cv"
	case ReasonMissingPosition:
		return "missing_position"
	case ReasonPositionClosed:
		return "position_closed"
	default:
		return "other"
	}
}

// newRegistrationNumber derives a human-readable registration number from
// the year and a uuid fragment.
func newRegistrationNumber(now time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("REG-%d-%s", now.Year(), fragment)
}
