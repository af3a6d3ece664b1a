package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/sentinel"

	"sirpo/internal/platform/metrics"
	"sirpo/internal/store"
)

// Manager holds the in-memory session identity and keeps it consistent with
// the persisted auth records. All mutations re-persist synchronously; the
// kind marker and identity payload are written in the same call path.
type Manager struct {
	store   *store.Tiered
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	identity Identity
	tier     store.RetentionTier
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithMetrics attaches portal metrics.
func WithMetrics(met *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = met
	}
}

// NewManager constructs a session manager over the tiered store.
func NewManager(kv *store.Tiered, opts ...Option) (*Manager, error) {
	if kv == nil {
		return nil, fmt.Errorf("tiered store is required")
	}
	m := &Manager{
		store: kv,
		tier:  store.SessionOnly,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m, nil
}

// Current returns the in-memory identity.
func (m *Manager) Current() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.identity
}

// Tier returns the retention tier selected at login.
func (m *Manager) Tier() store.RetentionTier {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tier
}

// LoginApplicant installs an applicant identity and persists it under the
// tier selected by remember. The remember flag itself always lives in the
// durable tier so rehydration can find it before choosing a tier.
func (m *Manager) LoginApplicant(ctx context.Context, applicant Applicant, remember bool) error {
	identity := ForApplicant(applicant)
	if !identity.IsAuthenticated() {
		return dErrors.New(dErrors.CodeInvalidInput, "applicant id is required")
	}

	tier := store.SessionOnly
	if remember {
		tier = store.Remembered
	}

	record, err := json.Marshal(applicant)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize applicant record")
	}

	if err := m.persist(ctx, store.KeyApplicant, string(record), string(KindApplicant), applicant.Token, tier); err != nil {
		return err
	}
	// The other kind's record and navigation cache must not survive a re-login.
	if err := m.store.RemoveAll(ctx, store.KeyAdministrator, store.KeyAdminSection); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear administrator state")
	}

	if remember {
		if err := m.store.Write(ctx, store.KeyRemember, "1", store.Remembered); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist remember flag")
		}
	} else {
		if err := m.store.Remove(ctx, store.KeyRemember); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear remember flag")
		}
	}

	m.mu.Lock()
	m.identity = identity
	m.tier = tier
	m.mu.Unlock()
	return nil
}

// LoginAdministrator installs an administrator identity. Administrators are
// not offered a remember choice: their sessions always use the durable tier.
func (m *Manager) LoginAdministrator(ctx context.Context, admin Administrator) error {
	identity := ForAdministrator(admin)
	if !identity.IsAuthenticated() {
		return dErrors.New(dErrors.CodeInvalidInput, "administrator user id is required")
	}
	if !admin.Role.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "administrator role is required")
	}

	record, err := json.Marshal(admin)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize administrator record")
	}

	if err := m.persist(ctx, store.KeyAdministrator, string(record), string(KindAdministrator), admin.Token, store.Remembered); err != nil {
		return err
	}
	if err := m.store.RemoveAll(ctx, store.KeyApplicant, store.KeyLastSection, store.KeyLastTab, store.KeyRemember); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear applicant state")
	}

	m.mu.Lock()
	m.identity = identity
	m.tier = store.Remembered
	m.mu.Unlock()
	return nil
}

func (m *Manager) persist(ctx context.Context, recordKey, record, kind, token string, tier store.RetentionTier) error {
	if err := m.store.Write(ctx, store.KeySessionKind, kind, tier); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session kind")
	}
	if err := m.store.Write(ctx, recordKey, record, tier); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist identity record")
	}
	if token != "" {
		if err := m.store.Write(ctx, store.KeyToken, token, tier); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist token")
		}
	}
	return nil
}

// Logout clears the identity and wipes every persisted auth key from both
// tiers, including the cached navigation keys and the remember flag.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.RemoveAll(ctx, store.AuthKeys()...); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to wipe persisted session")
	}
	m.mu.Lock()
	m.identity = None()
	m.tier = store.SessionOnly
	m.mu.Unlock()
	return nil
}

// Rehydrate restores the identity from persisted records on startup. A
// malformed record is treated as absence: the stale keys are wiped and the
// logged-out identity returned, never an error.
func (m *Manager) Rehydrate(ctx context.Context) Identity {
	kind, err := m.store.Read(ctx, store.KeySessionKind)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			m.logger.WarnContext(ctx, "session kind read failed, treating as logged out", "error", err)
		}
		return m.discard(ctx)
	}

	tier := store.SessionOnly
	if _, err := m.store.Read(ctx, store.KeyRemember); err == nil {
		tier = store.Remembered
	}

	var identity Identity
	switch Kind(kind) {
	case KindApplicant:
		var applicant Applicant
		if !m.readRecord(ctx, store.KeyApplicant, &applicant) {
			return m.discard(ctx)
		}
		identity = ForApplicant(applicant)
	case KindAdministrator:
		var admin Administrator
		if !m.readRecord(ctx, store.KeyAdministrator, &admin) {
			return m.discard(ctx)
		}
		identity = ForAdministrator(admin)
		tier = store.Remembered
	default:
		m.logger.DebugContext(ctx, "unknown persisted session kind", "kind", kind)
		return m.discard(ctx)
	}

	if !identity.IsAuthenticated() {
		return m.discard(ctx)
	}

	m.mu.Lock()
	m.identity = identity
	m.tier = tier
	m.mu.Unlock()
	return identity
}

func (m *Manager) readRecord(ctx context.Context, key string, v any) bool {
	raw, err := m.store.Read(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		m.logger.DebugContext(ctx, "malformed persisted record discarded", "key", key, "error", err)
		if m.metrics != nil {
			m.metrics.RehydrateFailures.Inc()
		}
		return false
	}
	return true
}

// discard wipes whatever partial state exists and reports logged out.
func (m *Manager) discard(ctx context.Context) Identity {
	_ = m.store.RemoveAll(ctx, store.AuthKeys()...)
	m.mu.Lock()
	m.identity = None()
	m.tier = store.SessionOnly
	m.mu.Unlock()
	return None()
}

// CacheSection records the applicant's last active section. Cached only for
// applicant sessions.
func (m *Manager) CacheSection(ctx context.Context, section string) {
	m.cacheNav(ctx, store.KeyLastSection, section, KindApplicant)
}

// CacheTab records the applicant's last active tab.
func (m *Manager) CacheTab(ctx context.Context, tab string) {
	m.cacheNav(ctx, store.KeyLastTab, tab, KindApplicant)
}

// CacheAdminSection records the administrator's last active section.
func (m *Manager) CacheAdminSection(ctx context.Context, section string) {
	m.cacheNav(ctx, store.KeyAdminSection, section, KindAdministrator)
}

func (m *Manager) cacheNav(ctx context.Context, key, value string, kind Kind) {
	m.mu.RLock()
	identity, tier := m.identity, m.tier
	m.mu.RUnlock()
	if identity.Kind != kind || value == "" {
		return
	}
	if err := m.store.Write(ctx, key, value, tier); err != nil {
		m.logger.DebugContext(ctx, "navigation cache write failed", "key", key, "error", err)
	}
}
