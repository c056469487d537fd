package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/otlink-il/otlink-backend/internal/models"
)

// FallbackEngine serves search from a fixed in-memory dataset when the live
// store is unreachable. The dataset is projected into the canonical profile
// shape once at construction and never mutated, so concurrent searches need
// no locking. It never returns ErrUnavailable.
type FallbackEngine struct {
	profiles []models.OTProfile
}

// NewFallbackEngine builds the engine over the built-in seed dataset.
func NewFallbackEngine() *FallbackEngine {
	profiles := make([]models.OTProfile, 0, len(seedProfiles))
	for _, s := range seedProfiles {
		profiles = append(profiles, projectSeed(s))
	}
	return NewFallbackEngineFromProfiles(profiles)
}

// NewFallbackEngineFromProfiles builds the engine over an arbitrary
// canonical dataset. Used by tests and by the engine-equivalence checks.
func NewFallbackEngineFromProfiles(profiles []models.OTProfile) *FallbackEngine {
	return &FallbackEngine{profiles: profiles}
}

// projectSeed maps one legacy-shaped seed record into the canonical
// profile. Specialty and session keys go through the declared mapping
// tables; keys the tables don't know are dropped.
func projectSeed(s seedProfile) models.OTProfile {
	specs := make([]string, 0, len(s.specialties))
	for _, key := range s.specialties {
		if v, ok := seedSpecMap[key]; ok {
			specs = append(specs, v)
		}
	}
	sessions := make([]string, 0, len(s.sessionTypes))
	for _, key := range s.sessionTypes {
		if v, ok := seedSessionMap[key]; ok {
			sessions = append(sessions, v)
		}
	}

	tier := models.TierFree
	if s.isPro {
		tier = models.TierPremium
	}

	return models.OTProfile{
		Slug:            s.slug,
		DisplayName:     models.MultilingualText{He: s.name, Ar: s.name, En: s.nameEn},
		Bio:             models.MultilingualText{He: s.bio, Ar: s.bio, En: s.bio},
		Specialisations: specs,
		Languages:       s.languages,
		Location: models.GeoLocation{
			Type:        "Point",
			Coordinates: []float64{34.7818, 32.0853},
			City:        s.city,
		},
		SessionTypes:        sessions,
		InsuranceAccepted:   s.insurance,
		FeeRange:            &models.FeeRange{Min: s.feePerSession, Max: s.feePerSession, Currency: "ILS"},
		ContactPhone:        s.phone,
		SubscriptionTier:    tier,
		IsFeatured:          s.isPro,
		IsAcceptingPatients: s.acceptingNewPatients,
		IsActive:            true,
		CreatedAt:           time.Now().AddDate(0, 0, -s.daysAgo).Truncate(24 * time.Hour),
	}
}

func (e *FallbackEngine) Search(_ context.Context, q Query) (*SearchResult, error) {
	matched := make([]models.OTProfile, 0, len(e.profiles))
	for _, p := range e.profiles {
		if matchesQuery(p, q) {
			matched = append(matched, p)
		}
	}
	rankProfiles(matched, q)

	total := int64(len(matched))
	start := (q.Page - 1) * q.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &SearchResult{
		Profiles:   matched[start:end],
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

func (e *FallbackEngine) GetBySlug(_ context.Context, slug string) (*models.OTProfile, error) {
	for i := range e.profiles {
		if e.profiles[i].Slug == slug && e.profiles[i].IsActive {
			p := e.profiles[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// matchesQuery is the in-process rendition of the shared filter predicate.
// It must accept exactly the profiles the live engine's Mongo filter
// accepts (substring semantics for term and city, set intersection for
// facets, isActive gate).
func matchesQuery(p models.OTProfile, q Query) bool {
	if !p.IsActive {
		return false
	}
	if q.Term != "" && termScore(p, q.Term) == 0 {
		return false
	}
	if len(q.Specialisations) > 0 && !intersects(p.Specialisations, q.Specialisations) {
		return false
	}
	if len(q.Insurances) > 0 && !intersects(p.InsuranceAccepted, q.Insurances) {
		return false
	}
	if len(q.SessionTypes) > 0 && !intersects(p.SessionTypes, q.SessionTypes) {
		return false
	}
	if len(q.Languages) > 0 && !intersects(p.Languages, q.Languages) {
		return false
	}
	if q.City != "" && !containsFold(p.Location.City, q.City) {
		return false
	}
	if q.AcceptingOnly && !p.IsAcceptingPatients {
		return false
	}
	return true
}

// termScore returns 0 when the term matches nothing, otherwise a weight
// mirroring the live text index: name and city matches outrank bio-only
// matches.
func termScore(p models.OTProfile, term string) int {
	score := 0
	if containsFold(p.DisplayName.He, term) || containsFold(p.DisplayName.En, term) {
		score += 10
	}
	if containsFold(p.Location.City, term) {
		score += 5
	}
	for _, s := range p.Specialisations {
		if containsFold(s, term) {
			score += 3
			break
		}
	}
	if containsFold(p.Bio.He, term) {
		score++
	}
	return score
}

// rankProfiles orders a matched set in place. sort.SliceStable keeps ties
// in their incoming order, matching the stable-tie contract.
func rankProfiles(profiles []models.OTProfile, q Query) {
	if q.Term != "" {
		sort.SliceStable(profiles, func(i, j int) bool {
			si, sj := termScore(profiles[i], q.Term), termScore(profiles[j], q.Term)
			if si != sj {
				return si > sj
			}
			return profiles[i].IsFeatured && !profiles[j].IsFeatured
		})
		return
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].IsFeatured != profiles[j].IsFeatured {
			return profiles[i].IsFeatured
		}
		ti, tj := profiles[i].SubscriptionTier, profiles[j].SubscriptionTier
		if ti != tj {
			return ti == models.TierPremium
		}
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
}

func intersects(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
