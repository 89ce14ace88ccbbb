package training

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "patterns.json"))
	require.NoError(t, s.Load())
	return s
}

func pattern(id string) model.CodePattern {
	return model.CodePattern{
		ID:        id,
		Category:  "error-handling",
		Framework: "actix-web",
		Title:     "Unified error responder",
		Code:      "impl ResponseError for AppError {}",
		Tags:      []string{"errors", "http"},
	}
}

func TestLoadMissingFileIsEmptyCatalog(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "patterns.json"))
	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	err := s.Load()
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, path, le.Path)
}

func TestAddPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	s := NewStore(path)
	require.NoError(t, s.Load())

	require.NoError(t, s.Add(pattern("actix-errors")))

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())
	require.Equal(t, 1, reloaded.Len())

	p, err := reloaded.Find("actix-errors")
	require.NoError(t, err)
	assert.Equal(t, "Unified error responder", p.Title)
	assert.False(t, p.CreatedAt.IsZero())
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestAddDuplicate(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Add(pattern("dup")))

	err := s.Add(pattern("dup"))
	var de *DuplicatePatternError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "dup", de.ID)
	assert.Equal(t, 1, s.Len())
}

func TestAddValidationRejectsBeforeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	s := NewStore(path)
	require.NoError(t, s.Load())

	tests := []struct {
		name    string
		mutate  func(*model.CodePattern)
		errType any
	}{
		{"empty id", func(p *model.CodePattern) { p.ID = "" }, new(*InvalidPatternIDError)},
		{"long id", func(p *model.CodePattern) { p.ID = strings.Repeat("a", 129) }, new(*InvalidPatternIDError)},
		{"nul in id", func(p *model.CodePattern) { p.ID = "bad\x00id" }, new(*InvalidPatternIDError)},
		{"empty framework", func(p *model.CodePattern) { p.Framework = "" }, new(*InvalidFrameworkNameError)},
		{"empty category", func(p *model.CodePattern) { p.Category = "" }, new(*InvalidCategoryError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pattern("valid-id")
			tt.mutate(&p)
			err := s.Add(p)
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.errType)
		})
	}

	// Nothing got through, so nothing was persisted.
	assert.Equal(t, 0, s.Len())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "catalog file must not exist after rejected adds")
}

func TestTraversalShapedIdentifiersRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	s := NewStore(path)
	require.NoError(t, s.Load())

	for _, bad := range []string{"../../etc/passwd", "a/b", `a\b`, "..", "x..y"} {
		p := pattern(bad)
		err := s.Add(p)
		var pt *PathTraversalError
		require.ErrorAs(t, err, &pt, "id %q", bad)

		p = pattern("ok-id")
		p.Framework = bad
		require.ErrorAs(t, s.Add(p), &pt, "framework %q", bad)

		p = pattern("ok-id")
		p.Category = bad
		require.ErrorAs(t, s.Add(p), &pt, "category %q", bad)
	}

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUpdatePreservesCreatedAtAndUsage(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Add(pattern("keep")))
	require.NoError(t, s.MarkUsed("keep"))

	orig, err := s.Find("keep")
	require.NoError(t, err)

	updated := pattern("keep")
	updated.Title = "New title"
	updated.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	updated.UsageCount = 999
	require.NoError(t, s.Update(updated))

	got, err := s.Find("keep")
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.True(t, got.CreatedAt.Equal(orig.CreatedAt), "created_at must survive updates")
	assert.Equal(t, 1, got.UsageCount, "usage count must survive updates")
	assert.False(t, got.UpdatedAt.Before(orig.UpdatedAt))
}

func TestUpdateMissing(t *testing.T) {
	s := tempStore(t)
	err := s.Update(pattern("ghost"))
	var nf *PatternNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRemove(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Add(pattern("a")))
	require.NoError(t, s.Add(pattern("b")))

	require.NoError(t, s.Remove("a"))
	assert.Equal(t, 1, s.Len())

	var nf *PatternNotFoundError
	assert.ErrorAs(t, s.Remove("a"), &nf)
}

func TestMarkUsedIncrements(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Add(pattern("hot")))

	require.NoError(t, s.MarkUsed("hot"))
	require.NoError(t, s.MarkUsed("hot"))

	p, err := s.Find("hot")
	require.NoError(t, err)
	assert.Equal(t, 2, p.UsageCount)
}

func TestAddClampsRelevanceScore(t *testing.T) {
	s := tempStore(t)
	p := pattern("clamped")
	p.RelevanceScore = 7.5
	require.NoError(t, s.Add(p))

	got, err := s.Find("clamped")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.RelevanceScore)
}
