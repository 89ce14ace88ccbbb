// Package observations is the second tier of the two-tier context scheme.
// Full tool outputs are archived here under a random UUID; the compact
// project context carries only the id, so the assistant's working context
// stays small and the bulky output remains retrievable on demand.
//
// The archive is append-only: no enumeration, update, or deletion.
package observations

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"codescope/internal/fsutil"
)

// ErrInvalidObservationID is returned before any filesystem access when the
// id is not a syntactically valid UUID. Since the id becomes a filename,
// this check is the sole defense against path traversal.
var ErrInvalidObservationID = errors.New(
	"invalid observation id: must be a valid UUID (e.g. 550e8400-e29b-41d4-a716-446655440000)")

// Record is the persisted observation, one JSON file per record.
type Record struct {
	ObsID     string `json:"obs_id"`
	Tool      string `json:"tool"`
	CreatedAt string `json:"created_at"`
	Content   string `json:"content"`
}

// Store archives full tool outputs under a directory, keyed by UUID.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save archives a full tool output and returns its fresh observation id.
func (s *Store) Save(toolName, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive directory %s: %w", s.dir, err)
	}

	obsID := uuid.New().String()
	record := Record{
		ObsID:     obsID,
		Tool:      toolName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Content:   content,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("serialize observation: %w", err)
	}
	path := filepath.Join(s.dir, obsID+".json")
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}

	log.Debug().Str("obs_id", obsID).Str("tool", toolName).Msg("archived observation")
	return obsID, nil
}

// Get retrieves an archived output by id. The id is validated as a UUID
// before the filesystem is touched; a well-formed but unknown id returns
// ok == false with no error.
func (s *Store) Get(obsID string) (content string, ok bool, err error) {
	if _, err := uuid.Parse(obsID); err != nil {
		return "", false, ErrInvalidObservationID
	}

	path := filepath.Join(s.dir, obsID+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read observation %s: %w", obsID, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return "", false, fmt.Errorf("parse observation %s: %w", obsID, err)
	}
	return record.Content, true, nil
}
