package accounts

import (
	"context"
	"strings"
	"sync"

	"sirpo/pkg/domain"
	"sirpo/pkg/platform/sentinel"
)

// InMemoryStore holds accounts in process memory. Backs tests and
// development mode.
type InMemoryStore struct {
	mu         sync.RWMutex
	applicants map[domain.ApplicantID]*ApplicantAccount
	byEmail    map[string]domain.ApplicantID
	admins     map[string]*AdministratorAccount
}

// NewInMemoryStore creates an empty account store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		applicants: make(map[domain.ApplicantID]*ApplicantAccount),
		byEmail:    make(map[string]domain.ApplicantID),
		admins:     make(map[string]*AdministratorAccount),
	}
}

// SeedApplicant inserts or replaces an applicant account.
func (s *InMemoryStore) SeedApplicant(a *ApplicantAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.applicants[a.ID] = &cp
	s.byEmail[strings.ToLower(a.Email)] = a.ID
}

// SeedAdministrator inserts or replaces an administrator account.
func (s *InMemoryStore) SeedAdministrator(a *AdministratorAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.admins[strings.ToLower(a.Username)] = &cp
}

func (s *InMemoryStore) FindApplicantByEmail(ctx context.Context, email string) (*ApplicantAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.applicants[id]
	return &cp, nil
}

func (s *InMemoryStore) FindApplicantByID(ctx context.Context, id domain.ApplicantID) (*ApplicantAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applicants[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *InMemoryStore) FindAdministratorByUsername(ctx context.Context, username string) (*AdministratorAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.admins[strings.ToLower(username)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
