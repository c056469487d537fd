package search

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when the limit parameter is missing or invalid.
	DefaultPageSize = 20
	// MaxPageSize caps the limit parameter to keep result pages bounded.
	MaxPageSize = 100
)

// Query is the canonical, normalized search request. All engines consume
// this shape; the permissive single-or-array HTTP parameter shapes never
// leak past Normalize.
type Query struct {
	Term            string
	Specialisations []string
	Insurances      []string
	SessionTypes    []string
	Languages       []string
	City            string
	AcceptingOnly   bool
	Page            int
	PageSize        int
}

// Normalize converts raw query parameters (as parsed from the URL, each
// field zero-or-more values) into a canonical Query. Malformed input
// degrades to defaults; Normalize never fails.
func Normalize(raw map[string][]string) Query {
	q := Query{
		Term:            first(raw["q"]),
		Specialisations: toSet(raw["specialisation"]),
		Insurances:      toSet(raw["insurance"]),
		SessionTypes:    toSet(raw["sessionType"]),
		Languages:       toSet(raw["language"]),
		City:            first(raw["city"]),
		AcceptingOnly:   first(raw["acceptingOnly"]) == "true",
		Page:            parsePositive(first(raw["page"]), 1),
		PageSize:        parsePositive(first(raw["limit"]), DefaultPageSize),
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// first returns the first value trimmed, or "" when absent or blank.
func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// toSet collapses duplicates and drops blank entries. The result is sorted
// so equal inputs produce equal queries (used as a cache key).
func toSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// CacheKey returns a stable string identifying this query, suitable as a
// Redis key suffix for short-lived search result caching.
func (q Query) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=" + q.Term)
	b.WriteString("|sp=" + strings.Join(q.Specialisations, ","))
	b.WriteString("|in=" + strings.Join(q.Insurances, ","))
	b.WriteString("|st=" + strings.Join(q.SessionTypes, ","))
	b.WriteString("|la=" + strings.Join(q.Languages, ","))
	b.WriteString("|ci=" + strings.ToLower(q.City))
	if q.AcceptingOnly {
		b.WriteString("|acc")
	}
	b.WriteString("|p=" + strconv.Itoa(q.Page))
	b.WriteString("|n=" + strconv.Itoa(q.PageSize))
	return b.String()
}
