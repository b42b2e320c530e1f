package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultSessionPath = "~/.config/crate/session.toml"

// FileStore persists the session as TOML. Writes go to a temp file that is
// renamed into place, so readers never see one field without the other.
type FileStore struct {
	path string
}

// NewFileStore returns a store at path, or at the default location when path
// is blank.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultSessionPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	return &FileStore{path: resolved}, nil
}

// Path returns the resolved file path.
func (f *FileStore) Path() string { return f.path }

// Load reads the persisted session. A missing file is an empty session.
func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := toml.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parse session: %w", err)
	}
	return s, nil
}

// Save writes both fields in one rename.
func (f *FileStore) Save(s Session) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Clear removes the persisted session.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
