package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otlink-il/otlink-backend/internal/models"
)

// stubEngine plays the live engine with scripted failures.
type stubEngine struct {
	searchErr error
	slugErr   error
	result    *SearchResult
	profile   *models.OTProfile
	calls     int
}

func (s *stubEngine) Search(_ context.Context, _ Query) (*SearchResult, error) {
	s.calls++
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.result, nil
}

func (s *stubEngine) GetBySlug(_ context.Context, _ string) (*models.OTProfile, error) {
	if s.slugErr != nil {
		return nil, s.slugErr
	}
	return s.profile, nil
}

func TestSearcherUsesLiveResult(t *testing.T) {
	live := &stubEngine{result: &SearchResult{Total: 7, Page: 1, TotalPages: 1}}
	s := NewSearcher(live)

	result, degraded, err := s.Search(context.Background(), Query{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.EqualValues(t, 7, result.Total)
}

func TestSearcherFallsBackWhenUnavailable(t *testing.T) {
	live := &stubEngine{searchErr: ErrUnavailable}
	s := NewSearcher(live)

	result, degraded, err := s.Search(context.Background(), Query{Page: 1, PageSize: 100})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.EqualValues(t, len(seedProfiles), result.Total)
}

func TestSearcherPropagatesQueryErrors(t *testing.T) {
	// A reachable store rejecting the query is a bug to surface, never a
	// reason to serve demo data.
	queryErr := errors.New("unknown operator $foo")
	live := &stubEngine{searchErr: queryErr}
	s := NewSearcher(live)

	_, degraded, err := s.Search(context.Background(), Query{Page: 1, PageSize: 20})
	assert.ErrorIs(t, err, queryErr)
	assert.False(t, degraded)
}

func TestSearcherSlugLookup(t *testing.T) {
	t.Run("live hit", func(t *testing.T) {
		live := &stubEngine{profile: &models.OTProfile{Slug: "some-ot"}}
		s := NewSearcher(live)

		profile, degraded, err := s.GetBySlug(context.Background(), "some-ot")
		require.NoError(t, err)
		assert.False(t, degraded)
		assert.Equal(t, "some-ot", profile.Slug)
	})

	t.Run("live not-found passes through without fallback", func(t *testing.T) {
		live := &stubEngine{slugErr: ErrNotFound}
		s := NewSearcher(live)

		_, degraded, err := s.GetBySlug(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, degraded)
	})

	t.Run("unavailable store serves fallback profile", func(t *testing.T) {
		live := &stubEngine{slugErr: ErrUnavailable}
		s := NewSearcher(live)

		profile, degraded, err := s.GetBySlug(context.Background(), "noa-levi")
		require.NoError(t, err)
		assert.True(t, degraded)
		assert.Equal(t, "noa-levi", profile.Slug)
	})

	t.Run("unavailable store and unknown slug is not-found", func(t *testing.T) {
		live := &stubEngine{slugErr: ErrUnavailable}
		s := NewSearcher(live)

		_, degraded, err := s.GetBySlug(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, degraded)
	})
}

func TestFallbackConstructedLazilyOnce(t *testing.T) {
	live := &stubEngine{searchErr: ErrUnavailable}
	s := NewSearcher(live)

	_, _, err := s.Search(context.Background(), Query{Page: 1, PageSize: 10})
	require.NoError(t, err)
	first := s.fallback

	_, _, err = s.Search(context.Background(), Query{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Same(t, first, s.fallback)
}
