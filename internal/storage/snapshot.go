package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sketchboard/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Snapshot Store — the scene's single JSON document on disk
// ─────────────────────────────────────────────────────────────

// SnapshotStore persists the scene as one JSON document
// ({"elements": [...]}) written atomically via a temp file + rename,
// so a crash mid-write never corrupts the last good snapshot.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store writing to path, creating the
// parent directory if needed.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &SnapshotStore{path: path}, nil
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the snapshot from disk. A missing file is an empty scene,
// not an error — first run has nothing to load.
func (s *SnapshotStore) Load() (domain.SceneDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.SceneDocument{}, nil
	}
	if err != nil {
		return domain.SceneDocument{}, fmt.Errorf("read snapshot: %w", err)
	}

	var doc domain.SceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.SceneDocument{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return doc, nil
}

// Save writes the document atomically.
func (s *SnapshotStore) Save(doc domain.SceneDocument) error {
	if doc.Elements == nil {
		doc.Elements = []domain.Element{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
