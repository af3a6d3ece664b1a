// Package store implements the portal's durable key-value adapter: two
// retention tiers behind one interface, composed so that at most one tier
// holds a given key at a time.
package store

import "context"

// RetentionTier selects where a write lands. Chosen once at login; switching
// identity may change tier.
type RetentionTier int

const (
	// Remembered writes survive across sessions (durable tier).
	Remembered RetentionTier = iota
	// SessionOnly writes live only for the current session context.
	SessionOnly
)

func (t RetentionTier) String() string {
	if t == SessionOnly {
		return "session_only"
	}
	return "remembered"
}

// KV is a single retention tier. Read returns sentinel.ErrNotFound (possibly
// wrapped) when the key is absent.
type KV interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// KeyPrefix namespaces every key the portal persists.
const KeyPrefix = "sirpo:"

// Persisted keys. KeySessionKind and the matching identity record are always
// written in the same call path so they cannot diverge.
const (
	KeySessionKind   = KeyPrefix + "session_kind"
	KeyApplicant     = KeyPrefix + "applicant"
	KeyAdministrator = KeyPrefix + "administrator"
	KeyToken         = KeyPrefix + "token"
	KeyLastSection   = KeyPrefix + "last_section"
	KeyLastTab       = KeyPrefix + "last_tab"
	KeyAdminSection  = KeyPrefix + "admin_section"
	KeyRemember      = KeyPrefix + "remember"
	KeyNotice        = KeyPrefix + "notice"
)

// AuthKeys is the full set wiped on logout, from both tiers.
func AuthKeys() []string {
	return []string{
		KeySessionKind,
		KeyApplicant,
		KeyAdministrator,
		KeyToken,
		KeyLastSection,
		KeyLastTab,
		KeyAdminSection,
		KeyRemember,
	}
}
