// Package notify carries a one-shot message across a full-page navigation,
// e.g. a session-expiry notice posted just before a forced redirect.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	dErrors "sirpo/pkg/domain-errors"
	"sirpo/pkg/platform/sentinel"

	"sirpo/internal/store"
)

// NoticeType classifies the one-shot message.
type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeWarning NoticeType = "warning"
	NoticeError   NoticeType = "error"
)

// Notice is the ephemeral cross-navigation record.
type Notice struct {
	Type    NoticeType `json:"type"`
	Message string     `json:"message"`
}

// Bridge reads and writes the one-shot notice through the tiered store. The
// notice lives in the session tier: it must not outlive the session context
// it was posted in.
type Bridge struct {
	store  *store.Tiered
	logger *slog.Logger
}

// NewBridge constructs a notification bridge.
func NewBridge(kv *store.Tiered, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{store: kv, logger: logger}
}

// Post writes the notice, replacing any pending one.
func (b *Bridge) Post(ctx context.Context, notice Notice) error {
	raw, err := json.Marshal(notice)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize notice")
	}
	if err := b.store.Write(ctx, store.KeyNotice, string(raw), store.SessionOnly); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to post notice")
	}
	return nil
}

// Consume reads and deletes the pending notice exactly once. The notice is
// surfaced only when a prior authenticated session existed, so a first-time
// anonymous visitor never sees a stale session-expiry toast.
func (b *Bridge) Consume(ctx context.Context, hadPriorSession bool) (Notice, bool) {
	raw, err := b.store.Read(ctx, store.KeyNotice)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			b.logger.DebugContext(ctx, "notice read failed", "error", err)
		}
		return Notice{}, false
	}
	// Deleted regardless of whether it is surfaced: one shot means one shot.
	if err := b.store.Remove(ctx, store.KeyNotice); err != nil {
		b.logger.DebugContext(ctx, "notice remove failed", "error", err)
	}
	if !hadPriorSession {
		return Notice{}, false
	}

	var notice Notice
	if err := json.Unmarshal([]byte(raw), &notice); err != nil {
		b.logger.DebugContext(ctx, "malformed notice discarded", "error", err)
		return Notice{}, false
	}
	return notice, true
}
