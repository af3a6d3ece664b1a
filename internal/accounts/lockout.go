package accounts

import (
	"sync"
	"time"
)

// Lockout defaults.
const (
	defaultMaxFailures   = 5
	defaultLockoutWindow = 15 * time.Minute
)

// lockoutTracker counts consecutive login failures per identifier and locks
// the identifier for a window once the threshold is reached. Counters are
// in-process; a lockout protects the credential check, not a distributed
// rate budget.
type lockoutTracker struct {
	mu          sync.Mutex
	maxFailures int
	window      time.Duration
	clock       func() time.Time
	entries     map[string]*lockoutEntry
}

type lockoutEntry struct {
	failures    int
	lockedUntil time.Time
}

func newLockoutTracker(maxFailures int, window time.Duration, clock func() time.Time) *lockoutTracker {
	return &lockoutTracker{
		maxFailures: maxFailures,
		window:      window,
		clock:       clock,
		entries:     make(map[string]*lockoutEntry),
	}
}

// Locked reports whether the identifier is currently locked out.
func (t *lockoutTracker) Locked(identifier string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[identifier]
	if !ok {
		return false
	}
	if entry.lockedUntil.IsZero() {
		return false
	}
	if t.clock().After(entry.lockedUntil) {
		delete(t.entries, identifier)
		return false
	}
	return true
}

// RecordFailure increments the failure count, returning true when this
// failure triggered a lockout.
func (t *lockoutTracker) RecordFailure(identifier string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[identifier]
	if !ok {
		entry = &lockoutEntry{}
		t.entries[identifier] = entry
	}
	entry.failures++
	if entry.failures >= t.maxFailures && entry.lockedUntil.IsZero() {
		entry.lockedUntil = t.clock().Add(t.window)
		return true
	}
	return false
}

// Clear resets the identifier after a successful login.
func (t *lockoutTracker) Clear(identifier string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, identifier)
}
