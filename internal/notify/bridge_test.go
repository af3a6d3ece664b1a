package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"sirpo/internal/store"
)

type BridgeSuite struct {
	suite.Suite
	tiered *store.Tiered
	bridge *Bridge
}

func TestBridgeSuite(t *testing.T) {
	suite.Run(t, new(BridgeSuite))
}

func (s *BridgeSuite) SetupTest() {
	s.tiered = store.NewTiered(store.NewMemory(), store.NewMemory())
	s.bridge = NewBridge(s.tiered, nil)
}

func (s *BridgeSuite) TestConsume() {
	ctx := context.Background()

	s.Run("delivered exactly once with a prior session", func() {
		s.Require().NoError(s.bridge.Post(ctx, Notice{Type: NoticeWarning, Message: "session expired"}))

		notice, ok := s.bridge.Consume(ctx, true)
		s.Require().True(ok)
		s.Equal(NoticeWarning, notice.Type)
		s.Equal("session expired", notice.Message)

		_, ok = s.bridge.Consume(ctx, true)
		s.False(ok, "second consume must find nothing")
	})

	s.Run("suppressed without a prior session, and still burned", func() {
		s.Require().NoError(s.bridge.Post(ctx, Notice{Type: NoticeError, Message: "session expired"}))

		_, ok := s.bridge.Consume(ctx, false)
		s.False(ok)

		// A later load with a session must not resurrect it.
		_, ok = s.bridge.Consume(ctx, true)
		s.False(ok)
	})

	s.Run("a new post replaces the pending notice", func() {
		s.Require().NoError(s.bridge.Post(ctx, Notice{Type: NoticeSuccess, Message: "first"}))
		s.Require().NoError(s.bridge.Post(ctx, Notice{Type: NoticeSuccess, Message: "second"}))

		notice, ok := s.bridge.Consume(ctx, true)
		s.Require().True(ok)
		s.Equal("second", notice.Message)
	})

	s.Run("empty store yields nothing", func() {
		_, ok := s.bridge.Consume(ctx, true)
		s.False(ok)
	})

	s.Run("malformed stored notice is discarded", func() {
		s.Require().NoError(s.tiered.Write(ctx, store.KeyNotice, "{broken", store.SessionOnly))

		_, ok := s.bridge.Consume(ctx, true)
		s.False(ok)
	})
}
