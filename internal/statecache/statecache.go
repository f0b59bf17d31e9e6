// Package statecache is the best-effort persistence slot for in-progress
// wizard state. Each key is one JSON file; a save that fails is dropped
// and a load that fails reads as a miss, so state loss degrades to
// "start fresh", never to a crash.
package statecache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known keys for the wizard's three state slots.
const (
	KeySelection = "selection"
	KeyAnswers   = "answers"
	KeyOrgInfo   = "orginfo"
)

// Cache stores named JSON-serializable values in a directory.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Open resolves the default cache directory and returns a Cache for it.
func Open() (*Cache, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return New(dir), nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Save durably stores a value under key. Errors are returned so tests
// can observe them, but callers treat a failed save as best-effort and
// carry on.
func (c *Cache) Save(key string, v any) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Load reads the value stored under key into dest. It reports false on
// a missing or corrupt entry, leaving dest untouched; the caller keeps
// whatever default it already holds.
func (c *Cache) Load(key string, dest any) bool {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	return true
}

// Delete removes one key. Missing entries are not an error.
func (c *Cache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes the wizard's state slots. Used on restart and after a
// successful submission.
func (c *Cache) Clear() error {
	for _, key := range []string{KeySelection, KeyAnswers, KeyOrgInfo} {
		if err := c.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// DefaultDir resolves the cache directory in priority order:
// 1. AFSMETER_STATE_DIR environment variable
// 2. $XDG_STATE_HOME/afsmeter
// 3. ~/.local/state/afsmeter
func DefaultDir() (string, error) {
	if d := os.Getenv("AFSMETER_STATE_DIR"); d != "" {
		return d, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "afsmeter"), nil
}
