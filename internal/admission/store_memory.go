package admission

import (
	"context"
	"sort"
	"sync"
	"time"

	"sirpo/pkg/domain"
	"sirpo/pkg/platform/sentinel"
)

// InMemoryPositionStore serves positions from process memory. Backs tests
// and development mode.
type InMemoryPositionStore struct {
	mu        sync.RWMutex
	positions map[domain.PositionID]*Position
}

// NewInMemoryPositionStore creates an empty position store.
func NewInMemoryPositionStore() *InMemoryPositionStore {
	return &InMemoryPositionStore{positions: make(map[domain.PositionID]*Position)}
}

// Seed inserts or replaces a position.
func (s *InMemoryPositionStore) Seed(p *Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.positions[p.ID] = &cp
}

func (s *InMemoryPositionStore) FindByID(ctx context.Context, id domain.PositionID) (*Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryPositionStore) List(ctx context.Context, filters PositionFilters) ([]*Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	out := make([]*Position, 0, len(s.positions))
	for _, p := range s.positions {
		if filters.ZonalOfficeID != 0 && p.ZonalOfficeID != filters.ZonalOfficeID {
			continue
		}
		if filters.OpenOnly && !p.Open(now) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// InMemoryRegistrationStore persists registrations in process memory.
type InMemoryRegistrationStore struct {
	mu   sync.RWMutex
	regs []*Registration
	seen map[registrationKey]bool
}

type registrationKey struct {
	positionID  domain.PositionID
	applicantID domain.ApplicantID
}

// NewInMemoryRegistrationStore creates an empty registration store.
func NewInMemoryRegistrationStore() *InMemoryRegistrationStore {
	return &InMemoryRegistrationStore{seen: make(map[registrationKey]bool)}
}

func (s *InMemoryRegistrationStore) Create(ctx context.Context, reg *Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := registrationKey{positionID: reg.PositionID, applicantID: reg.ApplicantID}
	if s.seen[key] {
		return sentinel.ErrConflict
	}
	s.seen[key] = true
	cp := *reg
	s.regs = append(s.regs, &cp)
	return nil
}

func (s *InMemoryRegistrationStore) ListByApplicant(ctx context.Context, applicantID domain.ApplicantID) ([]*Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Registration
	for _, reg := range s.regs {
		if reg.ApplicantID == applicantID {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}
