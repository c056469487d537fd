package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otlink-il/otlink-backend/internal/models"
)

func testProfile(slug string, mutate func(*models.OTProfile)) models.OTProfile {
	p := models.OTProfile{
		Slug:                slug,
		DisplayName:         models.MultilingualText{He: "שם כלשהו", En: "Some Name"},
		Bio:                 models.MultilingualText{He: "ביוגרפיה"},
		Specialisations:     []string{models.SpecPaediatrics},
		Languages:           []string{"he"},
		Location:            models.GeoLocation{Type: "Point", City: "Tel Aviv"},
		SessionTypes:        []string{models.SessionInPerson},
		InsuranceAccepted:   []string{models.InsuranceClalit},
		SubscriptionTier:    models.TierFree,
		IsAcceptingPatients: true,
		IsActive:            true,
		CreatedAt:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func searchAll(t *testing.T, e *FallbackEngine, q Query) *SearchResult {
	t.Helper()
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	result, err := e.Search(context.Background(), q)
	require.NoError(t, err)
	return result
}

func slugsOf(result *SearchResult) []string {
	slugs := make([]string, 0, len(result.Profiles))
	for _, p := range result.Profiles {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func TestInactiveProfilesNeverVisible(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("active", nil),
		testProfile("inactive", func(p *models.OTProfile) { p.IsActive = false }),
	})

	t.Run("empty query", func(t *testing.T) {
		result := searchAll(t, engine, Query{})
		assert.Equal(t, []string{"active"}, slugsOf(result))
		assert.EqualValues(t, 1, result.Total)
	})

	t.Run("matching filters do not override", func(t *testing.T) {
		result := searchAll(t, engine, Query{Specialisations: []string{models.SpecPaediatrics}})
		assert.Equal(t, []string{"active"}, slugsOf(result))
	})

	t.Run("slug lookup", func(t *testing.T) {
		_, err := engine.GetBySlug(context.Background(), "inactive")
		assert.ErrorIs(t, err, ErrNotFound)

		p, err := engine.GetBySlug(context.Background(), "active")
		require.NoError(t, err)
		assert.Equal(t, "active", p.Slug)
	})
}

func TestFacetFiltersAreIntersectionBased(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("both", func(p *models.OTProfile) {
			p.Specialisations = []string{models.SpecPaediatrics, models.SpecGeriatrics}
		}),
	})

	t.Run("one shared value matches", func(t *testing.T) {
		result := searchAll(t, engine, Query{
			Specialisations: []string{models.SpecGeriatrics, models.SpecVocational},
		})
		assert.Equal(t, []string{"both"}, slugsOf(result))
	})

	t.Run("no shared value does not match", func(t *testing.T) {
		result := searchAll(t, engine, Query{
			Specialisations: []string{models.SpecVocational},
		})
		assert.Empty(t, result.Profiles)
		assert.EqualValues(t, 0, result.Total)
		assert.Equal(t, 0, result.TotalPages)
	})

	t.Run("unknown facet value never matches", func(t *testing.T) {
		result := searchAll(t, engine, Query{Specialisations: []string{"astrology"}})
		assert.Empty(t, result.Profiles)
	})
}

func TestFilterCombinations(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("match", func(p *models.OTProfile) {
			p.InsuranceAccepted = []string{models.InsuranceMaccabi}
			p.SessionTypes = []string{models.SessionTelehealth}
			p.Languages = []string{"he", "ar"}
		}),
		testProfile("wrong-insurance", func(p *models.OTProfile) {
			p.InsuranceAccepted = []string{models.InsuranceLeumit}
			p.SessionTypes = []string{models.SessionTelehealth}
			p.Languages = []string{"he", "ar"}
		}),
		testProfile("not-accepting", func(p *models.OTProfile) {
			p.InsuranceAccepted = []string{models.InsuranceMaccabi}
			p.SessionTypes = []string{models.SessionTelehealth}
			p.Languages = []string{"he", "ar"}
			p.IsAcceptingPatients = false
		}),
	})

	result := searchAll(t, engine, Query{
		Insurances:    []string{models.InsuranceMaccabi},
		SessionTypes:  []string{models.SessionTelehealth},
		Languages:     []string{"ar"},
		AcceptingOnly: true,
	})
	assert.Equal(t, []string{"match"}, slugsOf(result))
}

func TestCityFilterIsCaseInsensitiveSubstring(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("tlv", func(p *models.OTProfile) { p.Location.City = "Tel Aviv-Yafo" }),
		testProfile("haifa", func(p *models.OTProfile) { p.Location.City = "Haifa" }),
	})

	assert.Equal(t, []string{"tlv"}, slugsOf(searchAll(t, engine, Query{City: "tel aviv"})))
	assert.Equal(t, []string{"haifa"}, slugsOf(searchAll(t, engine, Query{City: "HAIFA"})))
	assert.Empty(t, searchAll(t, engine, Query{City: "Eilat"}).Profiles)
}

func TestTermMatchFields(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("by-name-he", func(p *models.OTProfile) {
			p.DisplayName = models.MultilingualText{He: "נועה לוי"}
		}),
		testProfile("by-name-en", func(p *models.OTProfile) {
			p.DisplayName = models.MultilingualText{He: "x", En: "Noa Levi"}
		}),
		testProfile("by-bio", func(p *models.OTProfile) {
			p.Bio = models.MultilingualText{He: "מומחית לטיפול בידיים"}
		}),
		testProfile("by-city", func(p *models.OTProfile) { p.Location.City = "Ramat Gan" }),
		testProfile("by-spec", func(p *models.OTProfile) {
			p.Specialisations = []string{models.SpecSensoryProcessing}
		}),
		testProfile("no-match", nil),
	})

	tests := []struct {
		term string
		want string
	}{
		{"נועה", "by-name-he"},
		{"noa levi", "by-name-en"},
		{"בידיים", "by-bio"},
		{"ramat", "by-city"},
		{"sensory", "by-spec"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			result := searchAll(t, engine, Query{Term: tt.term})
			assert.Contains(t, slugsOf(result), tt.want)
			assert.NotContains(t, slugsOf(result), "no-match")
		})
	}
}

func TestRankingWithoutTerm(t *testing.T) {
	t1 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	t3 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("free-newest", func(p *models.OTProfile) { p.CreatedAt = t3 }),
		testProfile("premium", func(p *models.OTProfile) {
			p.SubscriptionTier = models.TierPremium
			p.CreatedAt = t2
		}),
		testProfile("featured-oldest", func(p *models.OTProfile) {
			p.IsFeatured = true
			p.CreatedAt = t1
		}),
	})

	result := searchAll(t, engine, Query{})
	assert.Equal(t, []string{"featured-oldest", "premium", "free-newest"}, slugsOf(result))
}

func TestRankingWithTerm(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("bio-only", func(p *models.OTProfile) {
			p.Bio = models.MultilingualText{He: "עובדת בשיטת בובאת"}
		}),
		testProfile("name-match", func(p *models.OTProfile) {
			p.DisplayName = models.MultilingualText{He: "x", En: "Bobath Clinic"}
		}),
	})

	result := searchAll(t, engine, Query{Term: "bobath"})
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "name-match", result.Profiles[0].Slug)

	// Hebrew term hits the bio only
	result = searchAll(t, engine, Query{Term: "בובאת"})
	require.Len(t, result.Profiles, 1)
	assert.Equal(t, "bio-only", result.Profiles[0].Slug)
}

func TestTermRelevanceOrdersNameAboveBio(t *testing.T) {
	engine := NewFallbackEngineFromProfiles([]models.OTProfile{
		testProfile("bio-hit", func(p *models.OTProfile) {
			p.Bio = models.MultilingualText{He: "therapy for everyone"}
		}),
		testProfile("name-hit", func(p *models.OTProfile) {
			p.DisplayName = models.MultilingualText{He: "x", En: "Therapy House"}
		}),
		testProfile("featured-bio-hit", func(p *models.OTProfile) {
			p.Bio = models.MultilingualText{He: "therapy at home"}
			p.IsFeatured = true
		}),
	})

	result := searchAll(t, engine, Query{Term: "therapy"})
	assert.Equal(t, []string{"name-hit", "featured-bio-hit", "bio-hit"}, slugsOf(result))
}

func TestPagination(t *testing.T) {
	profiles := make([]models.OTProfile, 0, 45)
	for i := 0; i < 45; i++ {
		profiles = append(profiles, testProfile(fmt.Sprintf("ot-%02d", i), func(p *models.OTProfile) {
			p.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour)
		}))
	}
	engine := NewFallbackEngineFromProfiles(profiles)

	tests := []struct {
		page      int
		wantLen   int
		wantTotal int64
	}{
		{1, 20, 45},
		{2, 20, 45},
		{3, 5, 45},
		{4, 0, 45},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			result := searchAll(t, engine, Query{Page: tt.page, PageSize: 20})
			assert.Len(t, result.Profiles, tt.wantLen)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, 3, result.TotalPages)
			assert.Equal(t, tt.page, result.Page)
		})
	}

	t.Run("pages do not overlap", func(t *testing.T) {
		seen := map[string]bool{}
		for page := 1; page <= 3; page++ {
			result := searchAll(t, engine, Query{Page: page, PageSize: 20})
			for _, slug := range slugsOf(result) {
				assert.False(t, seen[slug], "slug %s appeared twice", slug)
				seen[slug] = true
			}
		}
		assert.Len(t, seen, 45)
	})
}

func TestSeedProjection(t *testing.T) {
	engine := NewFallbackEngine()

	t.Run("every seed profile is active and searchable", func(t *testing.T) {
		result := searchAll(t, engine, Query{PageSize: 100})
		assert.EqualValues(t, len(seedProfiles), result.Total)
	})

	t.Run("internal keys map to canonical tokens", func(t *testing.T) {
		p, err := engine.GetBySlug(context.Background(), "noa-levi")
		require.NoError(t, err)
		assert.Contains(t, p.Specialisations, models.SpecSensoryProcessing)
		assert.Contains(t, p.SessionTypes, models.SessionInPerson)
		assert.NotContains(t, p.Specialisations, "sensoryProcessing")
		assert.NotContains(t, p.SessionTypes, "inPerson")
	})

	t.Run("isPro maps to premium and featured", func(t *testing.T) {
		p, err := engine.GetBySlug(context.Background(), "noa-levi")
		require.NoError(t, err)
		assert.Equal(t, models.TierPremium, p.SubscriptionTier)
		assert.True(t, p.IsFeatured)

		p, err = engine.GetBySlug(context.Background(), "yael-cohen")
		require.NoError(t, err)
		assert.Equal(t, models.TierFree, p.SubscriptionTier)
		assert.False(t, p.IsFeatured)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := engine.GetBySlug(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSeedDatasetFiltering(t *testing.T) {
	engine := NewFallbackEngine()

	t.Run("paediatrics in Tel Aviv", func(t *testing.T) {
		result := searchAll(t, engine, Query{
			Specialisations: []string{models.SpecPaediatrics},
			City:            "תל אביב",
		})
		assert.ElementsMatch(t, []string{"noa-levi", "tamar-shapiro"}, slugsOf(result))
	})

	t.Run("accepting only excludes closed practices", func(t *testing.T) {
		result := searchAll(t, engine, Query{AcceptingOnly: true, PageSize: 100})
		assert.NotContains(t, slugsOf(result), "amir-mizrahi")
		assert.NotContains(t, slugsOf(result), "omar-haddad")
	})

	t.Run("arabic speakers", func(t *testing.T) {
		result := searchAll(t, engine, Query{Languages: []string{"ar"}, PageSize: 100})
		assert.ElementsMatch(t, []string{"rana-khatib", "omar-haddad"}, slugsOf(result))
	})
}
