package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pfassina/mdoutline/internal/vault"
)

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists under the vault's state directory.
func NewStore(vaultPath string) *Store {
	return &Store{
		path: filepath.Join(vaultPath, vault.StateDirName, "state.json"),
	}
}

// Load reads the session state from disk. A missing file yields Default.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("read session: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("decode session: %w", err)
	}

	return state, nil
}

// Exists reports whether a session has been saved before.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Save writes the session state to disk.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
