package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DatasetStore persists named JSON datasets under the vault's data
// directory, each paired with a last-updated marker kept in meta.json.
type DatasetStore struct {
	dir string
	mu  sync.Mutex
}

type metaFile struct {
	UpdatedAt map[string]time.Time `json:"updated_at"`
}

func NewDatasetStore(dataPath string) *DatasetStore {
	return &DatasetStore{dir: dataPath}
}

// Load decodes the named dataset into v. A missing file is reported as
// os.ErrNotExist; callers that want default values substitute them on any
// load or decode failure.
func (s *DatasetStore) Load(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.datasetPath(name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode dataset %s: %w", name, err)
	}
	return nil
}

// Save writes the named dataset and stamps its last-updated marker.
func (s *DatasetStore) Save(name string, v any, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", name, err)
	}
	if err := os.WriteFile(s.datasetPath(name), payload, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", name, err)
	}
	return s.stamp(name, updatedAt)
}

// UpdatedAt returns the dataset's last-updated marker, zero if unknown.
func (s *DatasetStore) UpdatedAt(name string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMeta().UpdatedAt[name]
}

// SetUpdatedAt overwrites the marker without touching the dataset itself.
// Sync merges use it to adopt a remote timestamp, and the completion
// ledger uses it for its marker-only dataset.
func (s *DatasetStore) SetUpdatedAt(name string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stamp(name, t)
}

func (s *DatasetStore) datasetPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *DatasetStore) metaPath() string {
	return filepath.Join(s.dir, "meta.json")
}

func (s *DatasetStore) loadMeta() metaFile {
	meta := metaFile{UpdatedAt: map[string]time.Time{}}
	raw, err := os.ReadFile(s.metaPath())
	if err != nil {
		return meta
	}
	if err := json.Unmarshal(raw, &meta); err != nil || meta.UpdatedAt == nil {
		return metaFile{UpdatedAt: map[string]time.Time{}}
	}
	return meta
}

func (s *DatasetStore) stamp(name string, t time.Time) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	meta := s.loadMeta()
	meta.UpdatedAt[name] = t
	payload, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := os.WriteFile(s.metaPath(), payload, 0o644); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}
