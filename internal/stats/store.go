package stats

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound reports that no statistics record has ever been persisted.
var ErrNotFound = errors.New("stats: record not found")

// Store persists the single cumulative statistics record. Save replaces the
// whole document atomically: a concurrent Load sees either the previous
// record or the new one, never a mix.
type Store interface {
	Load(ctx context.Context) (StatsRecord, error)
	Save(ctx context.Context, record StatsRecord) error
}

// FileStore keeps the record as one JSON document on disk. Writes go to a
// temp file in the target directory and are renamed into place.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (StatsRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return StatsRecord{}, ErrNotFound
	}
	if err != nil {
		return StatsRecord{}, err
	}

	var record StatsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return StatsRecord{}, err
	}
	return record, nil
}

func (s *FileStore) Save(_ context.Context, record StatsRecord) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".stats-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
