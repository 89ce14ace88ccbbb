package training

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/model"
)

func searchStore(t *testing.T, patterns ...model.CodePattern) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "patterns.json"))
	require.NoError(t, s.Load())
	for _, p := range patterns {
		require.NoError(t, s.Add(p))
	}
	return s
}

func TestSearchScoring(t *testing.T) {
	s := searchStore(t,
		model.CodePattern{
			ID: "exact", Framework: "actix-web", Category: "routing",
			Title: "t", Code: "c", Tags: []string{"http", "async"},
		},
		model.CodePattern{
			ID: "tags-only", Framework: "rocket", Category: "routing",
			Title: "t", Code: "c", Tags: []string{"http"},
		},
		model.CodePattern{
			ID: "unrelated", Framework: "django", Category: "orm",
			Title: "t", Code: "c", Tags: []string{"database"},
		},
	)

	got := s.Search(Query{
		ProjectType: model.Rust,
		Framework:   "actix-web",
		Tags:        []string{"http", "async"},
	})

	require.Len(t, got, 2, "zero-score patterns are excluded")
	assert.Equal(t, "exact", got[0].ID)
	// framework 0.5 + tag overlap 0.2 * 2/2
	assert.InDelta(t, 0.7, got[0].RelevanceScore, 1e-9)
	assert.Equal(t, "tags-only", got[1].ID)
	// tag overlap 0.2 * 1/2
	assert.InDelta(t, 0.1, got[1].RelevanceScore, 1e-9)
}

func TestSearchCategoryMatchesAsTag(t *testing.T) {
	s := searchStore(t, model.CodePattern{
		ID: "cat", Framework: "other", Category: "error-handling",
		Title: "t", Code: "c",
	})

	got := s.Search(Query{Framework: "nomatch", Tags: []string{"error-handling"}})
	require.Len(t, got, 1)
	// category 0.3, no tag overlap
	assert.InDelta(t, 0.3, got[0].RelevanceScore, 1e-9)
}

func TestSearchFrameworkFallsBackToProjectType(t *testing.T) {
	s := searchStore(t, model.CodePattern{
		ID: "generic-rust", Framework: "rust", Category: "idioms",
		Title: "t", Code: "c",
	})

	got := s.Search(Query{ProjectType: model.Rust})
	require.Len(t, got, 1)
	assert.InDelta(t, 0.5, got[0].RelevanceScore, 1e-9)
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := searchStore(t, model.CodePattern{
		ID: "mixed", Framework: "Actix-Web", Category: "Routing",
		Title: "t", Code: "c", Tags: []string{"HTTP"},
	})

	got := s.Search(Query{Framework: "actix-web", Tags: []string{"http"}})
	require.Len(t, got, 1)
	assert.InDelta(t, 0.7, got[0].RelevanceScore, 1e-9)
}

func TestSearchTieBreaks(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	s := searchStore(t,
		model.CodePattern{
			ID: "b-used-more", Framework: "express", Category: "x",
			Title: "t", Code: "c", UsageCount: 5,
			CreatedAt: older, UpdatedAt: older,
		},
		model.CodePattern{
			ID: "c-newer", Framework: "express", Category: "x",
			Title: "t", Code: "c", UsageCount: 2,
			CreatedAt: newer, UpdatedAt: newer,
		},
		model.CodePattern{
			ID: "d-older", Framework: "express", Category: "x",
			Title: "t", Code: "c", UsageCount: 2,
			CreatedAt: older, UpdatedAt: older,
		},
		model.CodePattern{
			ID: "a-older", Framework: "express", Category: "x",
			Title: "t", Code: "c", UsageCount: 2,
			CreatedAt: older, UpdatedAt: older,
		},
	)

	got := s.Search(Query{Framework: "express"})
	require.Len(t, got, 4)

	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	// Same score for all: usage desc, then updated_at desc, then id asc.
	assert.Equal(t, []string{"b-used-more", "c-newer", "a-older", "d-older"}, ids)
}

func TestSearchDeterministic(t *testing.T) {
	var patterns []model.CodePattern
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		patterns = append(patterns, model.CodePattern{
			ID: fmt.Sprintf("p-%02d", i), Framework: "fastapi", Category: "x",
			Title: "t", Code: "c", CreatedAt: ts, UpdatedAt: ts,
		})
	}
	s := searchStore(t, patterns...)

	first := s.Search(Query{Framework: "fastapi", Limit: 20})
	for i := 0; i < 5; i++ {
		again := s.Search(Query{Framework: "fastapi", Limit: 20})
		assert.Equal(t, first, again)
	}
}

func TestSearchLimit(t *testing.T) {
	var patterns []model.CodePattern
	for i := 0; i < 15; i++ {
		patterns = append(patterns, model.CodePattern{
			ID: fmt.Sprintf("p-%02d", i), Framework: "spring", Category: "x",
			Title: "t", Code: "c",
		})
	}
	s := searchStore(t, patterns...)

	assert.Len(t, s.Search(Query{Framework: "spring"}), DefaultSearchLimit)
	assert.Len(t, s.Search(Query{Framework: "spring", Limit: 3}), 3)
	assert.Len(t, s.Search(Query{Framework: "spring", Limit: -1}), DefaultSearchLimit)
}

func TestSearchEmptyCatalog(t *testing.T) {
	s := searchStore(t)
	assert.Empty(t, s.Search(Query{Framework: "anything"}))
}
