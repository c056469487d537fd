package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/otlink-il/otlink-backend/internal/search"
	"github.com/otlink-il/otlink-backend/internal/services"
)

var (
	searcher    *search.Searcher
	liveEngine  *search.MongoEngine
	searchCache = &services.SearchCache{}
)

// InitSearch wires the live engine and the fallback adapter. Called once at
// startup after the Mongo connection is established.
func InitSearch(db *mongo.Database) {
	liveEngine = search.NewMongoEngine(db)
	searcher = search.NewSearcher(liveEngine)
}

// SearchResponse is one page of results plus the degraded-mode marker used
// by the frontend to show its "demo/limited data" notice.
type SearchResponse struct {
	search.SearchResult
	Degraded bool `json:"degraded,omitempty"`
}

// SearchOTs handles GET /api/ots — the directory search endpoint.
// Filter parameters are repeatable (specialisation, insurance, sessionType,
// language); malformed paging input degrades to defaults rather than erroring.
func SearchOTs(w http.ResponseWriter, r *http.Request) {
	query := search.Normalize(r.URL.Query())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cached SearchResponse
	if searchCache.Get(ctx, query.CacheKey(), &cached) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cached)
		return
	}

	result, degraded, err := searcher.Search(ctx, query)
	if err != nil {
		log.Printf("[GET /api/ots] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := SearchResponse{SearchResult: *result, Degraded: degraded}
	if !degraded {
		searchCache.Set(ctx, query.CacheKey(), response)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetOTBySlug handles GET /api/ots/{slug} — direct profile lookup.
// Inactive profiles are indistinguishable from missing ones.
func GetOTBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	profile, degraded, err := searcher.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, search.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Not found")
			return
		}
		log.Printf("[GET /api/ots/{slug}] %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Fire-and-forget — must never block or fail the response. Skipped in
	// degraded mode since the store is down anyway.
	if !degraded {
		go liveEngine.IncrementViews(slug)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
