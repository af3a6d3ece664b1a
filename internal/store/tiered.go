package store

import (
	"context"
	"errors"

	"sirpo/pkg/platform/sentinel"
)

// Tiered composes the durable and session tiers. Writing with one tier
// clears any stale entry for the same key in the other, so at most one tier
// holds a key; reads check the durable tier first.
//
// A nil tier degrades every operation touching it to a no-op, mirroring the
// adapter's behavior in execution contexts with no backing storage.
type Tiered struct {
	durable KV
	session KV
}

// NewTiered composes the two retention tiers. Either tier may be nil.
func NewTiered(durable, session KV) *Tiered {
	return &Tiered{durable: durable, session: session}
}

// Read checks the durable tier first, falling back to the session tier.
func (t *Tiered) Read(ctx context.Context, key string) (string, error) {
	if t.durable != nil {
		v, err := t.durable.Read(ctx, key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return "", err
		}
	}
	if t.session != nil {
		return t.session.Read(ctx, key)
	}
	return "", sentinel.ErrNotFound
}

// Write stores the value in the tier selected by tier and removes the key
// from the other tier.
func (t *Tiered) Write(ctx context.Context, key, value string, tier RetentionTier) error {
	target, other := t.durable, t.session
	if tier == SessionOnly {
		target, other = t.session, t.durable
	}
	if target != nil {
		if err := target.Write(ctx, key, value); err != nil {
			return err
		}
	}
	if other != nil {
		if err := other.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the key from both tiers.
func (t *Tiered) Remove(ctx context.Context, key string) error {
	if t.durable != nil {
		if err := t.durable.Remove(ctx, key); err != nil {
			return err
		}
	}
	if t.session != nil {
		if err := t.session.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll deletes every given key from both tiers.
func (t *Tiered) RemoveAll(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := t.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
