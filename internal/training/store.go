// Package training owns the code pattern catalog: a single JSON collection
// persisted wholesale, with validated mutation paths and deterministic
// relevance-ranked search.
//
// The store holds no internal locks. Callers must not issue a mutating call
// concurrently with any other call against the same catalog path.
package training

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"codescope/internal/fsutil"
	"codescope/internal/model"
)

const catalogVersion = 1

// catalog is the on-disk shape of the pattern collection.
type catalog struct {
	Version  int                 `json:"version"`
	Patterns []model.CodePattern `json:"patterns"`
}

// Store is an explicitly owned pattern catalog handle. Tests construct
// isolated instances against temp paths; there is no process-wide singleton.
type Store struct {
	path     string
	patterns []model.CodePattern
}

// NewStore creates a store bound to the given catalog path. Call Load before
// first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole catalog into memory. A missing file is a valid empty
// catalog (first run); anything else that fails is a LoadError.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.patterns = nil
		return nil
	}
	if err != nil {
		return &LoadError{Path: s.path, Err: err}
	}

	var cat catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return &LoadError{Path: s.path, Err: err}
	}
	s.patterns = cat.Patterns
	return nil
}

// Save rewrites the whole catalog. The write goes through a temp file and
// rename so a concurrent reader never sees a torn catalog.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(catalog{Version: catalogVersion, Patterns: s.patterns}, "", "  ")
	if err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return &SaveError{Path: s.path, Err: err}
	}
	return nil
}

// Len reports the number of patterns in the catalog.
func (s *Store) Len() int { return len(s.patterns) }

// All returns a copy of the catalog contents.
func (s *Store) All() []model.CodePattern {
	out := make([]model.CodePattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Add validates and inserts a new pattern, then persists the catalog.
// Zero timestamps are filled with the current time.
func (s *Store) Add(p model.CodePattern) error {
	if err := validatePatternID(p.ID); err != nil {
		return err
	}
	if err := validateFramework(p.Framework); err != nil {
		return err
	}
	if err := validateCategory(p.Category); err != nil {
		return err
	}
	if s.indexOf(p.ID) >= 0 {
		return &DuplicatePatternError{ID: p.ID}
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	p.RelevanceScore = clampScore(p.RelevanceScore)

	s.patterns = append(s.patterns, p)
	if err := s.Save(); err != nil {
		return err
	}

	log.Debug().Str("id", p.ID).Str("framework", p.Framework).Msg("pattern added")
	return nil
}

// Update replaces an existing pattern's content. CreatedAt and UsageCount
// are carried over from the stored record; UpdatedAt is set to now.
func (s *Store) Update(p model.CodePattern) error {
	if err := validatePatternID(p.ID); err != nil {
		return err
	}
	if err := validateFramework(p.Framework); err != nil {
		return err
	}
	if err := validateCategory(p.Category); err != nil {
		return err
	}

	i := s.indexOf(p.ID)
	if i < 0 {
		return &PatternNotFoundError{ID: p.ID}
	}

	p.CreatedAt = s.patterns[i].CreatedAt
	p.UsageCount = s.patterns[i].UsageCount
	p.UpdatedAt = time.Now().UTC()
	p.RelevanceScore = clampScore(p.RelevanceScore)
	s.patterns[i] = p
	return s.Save()
}

// Remove deletes a pattern by id and persists the catalog.
func (s *Store) Remove(id string) error {
	if err := validatePatternID(id); err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return &PatternNotFoundError{ID: id}
	}
	s.patterns = append(s.patterns[:i], s.patterns[i+1:]...)
	return s.Save()
}

// Find returns a copy of the pattern with the given id.
func (s *Store) Find(id string) (model.CodePattern, error) {
	if err := validatePatternID(id); err != nil {
		return model.CodePattern{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return model.CodePattern{}, &PatternNotFoundError{ID: id}
	}
	return s.patterns[i], nil
}

// MarkUsed records a successful application of a pattern: usage count and
// updated_at both advance, and the catalog is persisted.
func (s *Store) MarkUsed(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return &PatternNotFoundError{ID: id}
	}
	s.patterns[i].UsageCount++
	s.patterns[i].UpdatedAt = time.Now().UTC()
	return s.Save()
}

func (s *Store) indexOf(id string) int {
	for i := range s.patterns {
		if s.patterns[i].ID == id {
			return i
		}
	}
	return -1
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
