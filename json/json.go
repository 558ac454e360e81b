// Package json persists the client identity as a versioned JSON document.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/medichat/medichat"
)

var _ medichat.AuthStore = (*Store)(nil)

// envelope is the v1 wire format for a persisted identity.
type envelope struct {
	Version   int       `json:"version"`
	Token     string    `json:"token"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a file-backed medichat.AuthStore. The whole identity lives in a
// single file so the fields are always written together.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the file the store writes to.
func (s *Store) Path() string { return s.path }

// MarshalIdentity serializes an Identity in v1 envelope format.
func MarshalIdentity(id medichat.Identity, updated time.Time) ([]byte, error) {
	return json.MarshalIndent(envelope{
		Version:   1,
		Token:     id.Token,
		FullName:  id.Name,
		Role:      string(id.Role),
		Email:     id.Email,
		UpdatedAt: updated,
	}, "", "  ")
}

// UnmarshalIdentity deserializes an Identity from v1 envelope format.
func UnmarshalIdentity(data []byte) (medichat.Identity, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return medichat.Identity{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return medichat.Identity{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	return medichat.Identity{
		Token: env.Token,
		Name:  env.FullName,
		Role:  medichat.Role(env.Role),
		Email: env.Email,
	}, nil
}

// Save writes the identity via a temp file and rename, creating parent
// directories as needed.
func (s *Store) Save(id medichat.Identity) error {
	data, err := MarshalIdentity(id, s.now().UTC())
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes data to a unique temp file next to path, syncs it
// and renames it over path. Readers see either the old or the new file.
func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "auth-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads the stored identity. A missing file yields the zero Identity.
func (s *Store) Load() (medichat.Identity, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return medichat.Identity{}, nil
	}
	if err != nil {
		return medichat.Identity{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalIdentity(data)
}

// Clear removes the stored identity. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
