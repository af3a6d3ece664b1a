package admission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sirpo/pkg/domain"
	dErrors "sirpo/pkg/domain-errors"
)

// Admission rules (duplicate guard, terminal prerequisites, window checks)
// are exercised here against real memory stores because the double-check
// semantics depend on store reads the HTTP tests do not observe.
type AdmissionSuite struct {
	suite.Suite
	positions     *InMemoryPositionStore
	registrations *InMemoryRegistrationStore
	service       *Service
	now           time.Time
}

func TestAdmissionSuite(t *testing.T) {
	suite.Run(t, new(AdmissionSuite))
}

func (s *AdmissionSuite) SetupTest() {
	s.positions = NewInMemoryPositionStore()
	s.registrations = NewInMemoryRegistrationStore()
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var err error
	s.service, err = New(s.positions, s.registrations, WithClock(func() time.Time { return s.now }))
	s.Require().NoError(err)

	s.positions.Seed(&Position{
		ID:            domain.PositionID(100),
		Title:         "Registrador itinerante",
		ZonalOfficeID: domain.ZonalOfficeID(3),
		Active:        true,
		OpensAt:       s.now.Add(-24 * time.Hour),
		ClosesAt:      s.now.Add(24 * time.Hour),
	})
}

func (s *AdmissionSuite) register(applicant int64, position int64) *Registration {
	reg, err := s.service.Register(context.Background(), domain.ApplicantID(applicant), domain.PositionID(position), domain.CVID(1))
	s.Require().NoError(err)
	return reg
}

func (s *AdmissionSuite) TestCanRegister() {
	existing := []*Registration{
		{PositionID: 100, ApplicantID: 7},
		{PositionID: 200, ApplicantID: 7},
	}

	s.Run("denies a position already in the registration set", func() {
		decision := CanRegister(domain.PositionID(100), existing)
		s.False(decision.Allowed)
		s.Equal(ReasonAlreadyRegistered, decision.Reason)
	})

	s.Run("allows a position absent from the set", func() {
		decision := CanRegister(domain.PositionID(300), existing)
		s.True(decision.Allowed)
		s.Empty(decision.Reason)
	})

	s.Run("empty set always allows", func() {
		s.True(CanRegister(domain.PositionID(100), nil).Allowed)
	})
}

func (s *AdmissionSuite) TestCheck() {
	ctx := context.Background()

	s.Run("open position with no prior registration is allowed", func() {
		decision, err := s.service.Check(ctx, 7, 100)
		s.NoError(err)
		s.True(decision.Allowed)
	})

	s.Run("prior registration flips the decision", func() {
		s.register(7, 100)

		decision, err := s.service.Check(ctx, 7, 100)
		s.NoError(err)
		s.False(decision.Allowed)
		s.Equal(ReasonAlreadyRegistered, decision.Reason)
	})

	s.Run("unknown position is denied, not an error", func() {
		decision, err := s.service.Check(ctx, 7, 999)
		s.NoError(err)
		s.False(decision.Allowed)
		s.Equal(ReasonMissingPosition, decision.Reason)
	})

	s.Run("closed position is denied", func() {
		s.positions.Seed(&Position{
			ID:      domain.PositionID(101),
			Active:  true,
			OpensAt: s.now.Add(24 * time.Hour),
		})

		decision, err := s.service.Check(ctx, 7, 101)
		s.NoError(err)
		s.Equal(ReasonPositionClosed, decision.Reason)
	})

	s.Run("unauthenticated applicant is an error", func() {
		_, err := s.service.Check(ctx, 0, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *AdmissionSuite) TestRegister() {
	ctx := context.Background()

	s.Run("accepts and numbers a valid registration", func() {
		reg := s.register(7, 100)

		s.Equal(StatusReceived, reg.Status)
		s.Equal(domain.PositionID(100), reg.PositionID)
		s.Regexp(`^REG-2026-[0-9A-F]{8}$`, reg.RegistrationNumber)

		listed, err := s.service.ListForApplicant(ctx, 7)
		s.NoError(err)
		s.Len(listed, 1)
	})

	s.Run("second registration for the same position is denied", func() {
		s.register(8, 100)

		_, err := s.service.Register(ctx, 8, 100, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), ReasonAlreadyRegistered)
	})

	s.Run("store conflict from a concurrent duplicate maps to denial", func() {
		// Write through the store directly, simulating another tab landing
		// between this flow's check and write.
		s.Require().NoError(s.registrations.Create(ctx, &Registration{
			ID:          domain.NewRegistrationID(),
			PositionID:  100,
			ApplicantID: 9,
			CVID:        1,
			Status:      StatusReceived,
		}))

		_, err := s.service.Register(ctx, 9, 100, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("missing prerequisites are terminal", func() {
		_, err := s.service.Register(ctx, 0, 100, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = s.service.Register(ctx, 7, 0, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Contains(err.Error(), ReasonMissingPosition)

		_, err = s.service.Register(ctx, 7, 100, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		s.Contains(err.Error(), ReasonMissingCV)
	})

	s.Run("unknown position is not found", func() {
		_, err := s.service.Register(ctx, 7, 999, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("inactive position is denied", func() {
		s.positions.Seed(&Position{
			ID:      domain.PositionID(102),
			Active:  false,
			OpensAt: s.now.Add(-time.Hour),
		})

		_, err := s.service.Register(ctx, 7, 102, 1)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), ReasonPositionClosed)
	})

	s.Run("different applicants may register for the same position", func() {
		s.register(20, 100)
		s.register(21, 100)
	})
}

func (s *AdmissionSuite) TestPositionWindow() {
	base := Position{Active: true, OpensAt: s.now.Add(-time.Hour), ClosesAt: s.now.Add(time.Hour)}

	s.Run("open inside the window", func() {
		s.True(base.Open(s.now))
	})

	s.Run("closed before opening and after closing", func() {
		s.False(base.Open(s.now.Add(-2 * time.Hour)))
		s.False(base.Open(s.now.Add(2 * time.Hour)))
	})

	s.Run("zero close time means no deadline", func() {
		p := base
		p.ClosesAt = time.Time{}
		s.True(p.Open(s.now.Add(1000 * time.Hour)))
	})

	s.Run("inactive never opens", func() {
		p := base
		p.Active = false
		s.False(p.Open(s.now))
	})
}
