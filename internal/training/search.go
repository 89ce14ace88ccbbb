package training

import (
	"sort"
	"strings"

	"codescope/internal/model"
)

// Additive score weights. Framework identity dominates, category overlap is
// next, tag intersection refines within those bands.
const (
	frameworkWeight = 0.5
	categoryWeight  = 0.3
	tagWeight       = 0.2
)

// DefaultSearchLimit bounds search results when the caller passes limit <= 0.
const DefaultSearchLimit = 10

// Query describes what a project is looking for.
type Query struct {
	ProjectType model.ProjectType
	Framework   string
	Tags        []string
	Limit       int
}

// Search scores every pattern against the query and returns the top matches
// with RelevanceScore set. Ordering is total: score descending, then usage
// count descending, then updated_at descending, then id ascending — repeated
// calls with identical inputs return identical orderings.
func (s *Store) Search(q Query) []model.CodePattern {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryTags := make(map[string]bool, len(q.Tags))
	for _, t := range q.Tags {
		queryTags[strings.ToLower(t)] = true
	}

	// The project type stands in for the framework when the caller has no
	// more specific name ("rust" projects match "rust" patterns).
	framework := strings.ToLower(q.Framework)
	if framework == "" {
		framework = q.ProjectType.String()
	}

	var matched []model.CodePattern
	for _, p := range s.patterns {
		score := scorePattern(&p, framework, queryTags)
		if score <= 0 {
			continue
		}
		p.RelevanceScore = clampScore(score)
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func scorePattern(p *model.CodePattern, framework string, queryTags map[string]bool) float64 {
	var score float64

	if strings.ToLower(p.Framework) == framework {
		score += frameworkWeight
	}
	if queryTags[strings.ToLower(p.Category)] {
		score += categoryWeight
	}
	if len(queryTags) > 0 {
		overlap := 0
		for _, t := range p.Tags {
			if queryTags[strings.ToLower(t)] {
				overlap++
			}
		}
		score += tagWeight * float64(overlap) / float64(len(queryTags))
	}
	return score
}
