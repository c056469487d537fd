package search

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/otlink-il/otlink-backend/internal/models"
)

// Searcher is the single entry point for all call sites. It tries the live
// engine first and serves from the in-memory fallback only when the live
// store is unreachable, tagging the response as degraded. Any other live
// engine error propagates: a reachable store rejecting a query is a bug to
// surface, not a condition to paper over.
type Searcher struct {
	live Engine

	fallbackOnce sync.Once
	fallback     *FallbackEngine
}

func NewSearcher(live Engine) *Searcher {
	return &Searcher{live: live}
}

func (s *Searcher) fallbackEngine() *FallbackEngine {
	s.fallbackOnce.Do(func() {
		s.fallback = NewFallbackEngine()
	})
	return s.fallback
}

// Search runs the query against the live engine. The degraded flag is true
// iff the result came from the fallback dataset.
func (s *Searcher) Search(ctx context.Context, q Query) (*SearchResult, bool, error) {
	result, err := s.live.Search(ctx, q)
	if err == nil {
		return result, false, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return nil, false, err
	}

	log.Printf("search store unavailable, serving fallback dataset: %v", err)
	result, err = s.fallbackEngine().Search(ctx, q)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// GetBySlug looks up a single active profile. ErrNotFound passes through
// unchanged from either engine; only store unreachability triggers the
// fallback dataset.
func (s *Searcher) GetBySlug(ctx context.Context, slug string) (*models.OTProfile, bool, error) {
	profile, err := s.live.GetBySlug(ctx, slug)
	if err == nil {
		return profile, false, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return nil, false, err
	}

	log.Printf("search store unavailable, serving fallback dataset: %v", err)
	profile, err = s.fallbackEngine().GetBySlug(ctx, slug)
	if err != nil {
		return nil, true, err
	}
	return profile, true, nil
}
