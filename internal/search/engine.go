package search

import (
	"context"
	"errors"

	"github.com/otlink-il/otlink-backend/internal/models"
)

var (
	// ErrUnavailable means the backing store could not be reached. The
	// adapter treats this as the signal to serve from the fallback engine.
	// Query-execution errors on a reachable store are returned as-is and
	// must not be wrapped in ErrUnavailable.
	ErrUnavailable = errors.New("search backend unavailable")

	// ErrNotFound is returned by GetBySlug when no active profile carries
	// the slug. A normal outcome, not a backend failure.
	ErrNotFound = errors.New("profile not found")
)

// SearchResult is one page of matching profiles plus the pre-pagination
// total.
type SearchResult struct {
	Profiles   []models.OTProfile `json:"profiles"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
}

// Engine is the contract shared by the live Mongo engine and the in-memory
// fallback engine. Both apply identical filter and ranking semantics; only
// the live engine can return ErrUnavailable.
type Engine interface {
	Search(ctx context.Context, q Query) (*SearchResult, error)
	GetBySlug(ctx context.Context, slug string) (*models.OTProfile, error)
}

// totalPages computes ceil(total/pageSize); 0 when nothing matched.
func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
