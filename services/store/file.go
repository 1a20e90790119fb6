package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"sjsage522/wishlistwatcher/internal/wishlist"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/pkg/errors"
)

const fileBackend = "file"

// stateFileMode is applied to the temp file, since CreateTemp uses 0600
const stateFileMode os.FileMode = 0o644

// FileStore keeps the snapshot as an indented JSON object in a single file
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot file; a missing file is an empty snapshot
func (s *FileStore) Load(_ context.Context) (wishlist.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		logger.ForStore(fileBackend).Info().Str("path", s.path).Msg("No saved state, starting empty")
		return wishlist.Snapshot{}, nil
	}
	if err != nil {
		return nil, errors.NewPersistence(fileBackend, "failed to read "+s.path, err)
	}

	snapshot := wishlist.Snapshot{}
	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot, nil
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.NewPersistence(fileBackend, "failed to decode "+s.path, err)
	}
	if snapshot == nil {
		snapshot = wishlist.Snapshot{}
	}
	return snapshot, nil
}

// Save writes the snapshot to a temporary file and renames it over the old one
func (s *FileStore) Save(_ context.Context, snapshot wishlist.Snapshot) error {
	if snapshot == nil {
		snapshot = wishlist.Snapshot{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return errors.NewPersistence(fileBackend, "failed to encode snapshot", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewPersistence(fileBackend, "failed to create "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.NewPersistence(fileBackend, "failed to create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.NewPersistence(fileBackend, "failed to write snapshot", err)
	}
	if err := tmp.Chmod(stateFileMode); err != nil {
		tmp.Close()
		return errors.NewPersistence(fileBackend, "failed to set snapshot mode", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewPersistence(fileBackend, "failed to flush snapshot", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewPersistence(fileBackend, "failed to replace "+s.path, err)
	}

	logger.ForStore(fileBackend).Debug().Int("items", len(snapshot)).Msg("Snapshot saved")
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
