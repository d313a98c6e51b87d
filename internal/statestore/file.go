package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
)

// FileStore keeps the snapshot as an indented JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. A leading ~ is
// expanded to the home directory.
func NewFileStore(path string) (*FileStore, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("statestore: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &FileStore{path: path}, nil
}

// Path returns the resolved file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot from disk.
func (s *FileStore) Load(_ context.Context) (tetris.Snapshot, error) {
	var snap tetris.Snapshot

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, ErrNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("statestore: cannot read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("statestore: cannot parse %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot to a temporary file and renames it into place,
// so a crash never leaves a half-written save.
func (s *FileStore) Save(_ context.Context, snap tetris.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("statestore: cannot encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("statestore: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("statestore: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("statestore: cannot write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("statestore: cannot write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("statestore: cannot replace %s: %w", s.path, err)
	}
	return nil
}
