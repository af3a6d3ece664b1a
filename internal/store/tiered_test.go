package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"sirpo/pkg/platform/sentinel"
)

// Tiered composition invariants (single-tier-per-key, durable-first reads,
// nil-tier degradation) are exercised here because nothing above this layer
// observes which tier a key landed in.
type TieredStoreSuite struct {
	suite.Suite
	durable *Memory
	session *Memory
	tiered  *Tiered
}

func TestTieredStoreSuite(t *testing.T) {
	suite.Run(t, new(TieredStoreSuite))
}

func (s *TieredStoreSuite) SetupTest() {
	s.durable = NewMemory()
	s.session = NewMemory()
	s.tiered = NewTiered(s.durable, s.session)
}

func (s *TieredStoreSuite) TestWrite() {
	ctx := context.Background()

	s.Run("remembered write lands in durable tier only", func() {
		err := s.tiered.Write(ctx, KeyToken, "abc", Remembered)
		s.Require().NoError(err)

		v, err := s.durable.Read(ctx, KeyToken)
		s.NoError(err)
		s.Equal("abc", v)

		_, err = s.session.Read(ctx, KeyToken)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("session write clears stale durable entry", func() {
		s.Require().NoError(s.tiered.Write(ctx, KeyToken, "old", Remembered))
		s.Require().NoError(s.tiered.Write(ctx, KeyToken, "new", SessionOnly))

		_, err := s.durable.Read(ctx, KeyToken)
		s.ErrorIs(err, sentinel.ErrNotFound)

		v, err := s.session.Read(ctx, KeyToken)
		s.NoError(err)
		s.Equal("new", v)
	})

	s.Run("remembered write clears stale session entry", func() {
		s.Require().NoError(s.tiered.Write(ctx, KeyToken, "old", SessionOnly))
		s.Require().NoError(s.tiered.Write(ctx, KeyToken, "new", Remembered))

		_, err := s.session.Read(ctx, KeyToken)
		s.ErrorIs(err, sentinel.ErrNotFound)

		v, err := s.durable.Read(ctx, KeyToken)
		s.NoError(err)
		s.Equal("new", v)
	})
}

func (s *TieredStoreSuite) TestRead() {
	ctx := context.Background()

	s.Run("durable tier wins when both hold the key", func() {
		// Should not happen through Write; covers direct-tier drift.
		s.Require().NoError(s.durable.Write(ctx, KeyLastSection, "cv"))
		s.Require().NoError(s.session.Write(ctx, KeyLastSection, "positions"))

		v, err := s.tiered.Read(ctx, KeyLastSection)
		s.NoError(err)
		s.Equal("cv", v)
	})

	s.Run("falls back to session tier", func() {
		s.Require().NoError(s.session.Write(ctx, KeyLastTab, "personal"))

		v, err := s.tiered.Read(ctx, KeyLastTab)
		s.NoError(err)
		s.Equal("personal", v)
	})

	s.Run("absent key returns ErrNotFound", func() {
		_, err := s.tiered.Read(ctx, KeyPrefix+"missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *TieredStoreSuite) TestRemove() {
	ctx := context.Background()

	s.Run("removes from both tiers", func() {
		s.Require().NoError(s.durable.Write(ctx, KeyRemember, "1"))
		s.Require().NoError(s.session.Write(ctx, KeyRemember, "1"))

		s.Require().NoError(s.tiered.Remove(ctx, KeyRemember))

		_, err := s.durable.Read(ctx, KeyRemember)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.session.Read(ctx, KeyRemember)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("RemoveAll clears the full auth key set", func() {
		for _, key := range AuthKeys() {
			s.Require().NoError(s.durable.Write(ctx, key, "x"))
			s.Require().NoError(s.session.Write(ctx, key, "x"))
		}

		s.Require().NoError(s.tiered.RemoveAll(ctx, AuthKeys()...))

		s.Equal(0, s.durable.Len())
		s.Equal(0, s.session.Len())
	})
}

func (s *TieredStoreSuite) TestNilTiers() {
	ctx := context.Background()
	bare := NewTiered(nil, nil)

	s.Run("operations on nil tiers are no-ops", func() {
		s.NoError(bare.Write(ctx, KeyToken, "abc", Remembered))
		s.NoError(bare.Remove(ctx, KeyToken))
		_, err := bare.Read(ctx, KeyToken)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
