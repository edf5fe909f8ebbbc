// Package prefs persists user display preferences between sessions.
//
// Persistence is strictly best-effort: a store whose backing file cannot be
// read or written keeps serving values from memory and never surfaces the
// failure to callers. Pages compose fine without durable preferences; they
// simply reset on the next run.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/lensbook/lensbook/internal/logger"
)

// Preference names. Stored keys are namespaced so the file remains
// recognizable if it ever ends up shared with another tool.
const (
	KeyAccent       = "lensbook-accent"
	KeyTheme        = "lensbook-theme"
	KeyAudience     = "lensbook-audience"
	KeyAge          = "lensbook-age"
	KeyReduceMotion = "lensbook-reduce-motion"
)

type storeFile struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// Store is a durable key-value preference store.
type Store struct {
	path   string
	log    *logger.Logger
	mu     sync.RWMutex
	values map[string]string
}

// DefaultPath returns the conventional preference file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "lensbook", "preferences.json")
}

// NewStore creates a Store backed by the file at path and loads any existing
// values. Every failure mode (missing directory, unreadable file, corrupt
// JSON) degrades to an empty in-memory store.
func NewStore(path string, log *logger.Logger) *Store {
	s := &Store{
		path:   path,
		log:    log,
		values: make(map[string]string),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.WithFields(map[string]any{"path": path}).Debug("preference directory unavailable, running in-memory")
		return s
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithFields(map[string]any{"path": path}).Debug("preference file unreadable, running in-memory")
		}
		return s
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.WithFields(map[string]any{"path": path}).Debug("preference file corrupt, starting fresh")
		return s
	}
	if file.Values != nil {
		s.values = file.Values
	}

	return s
}

// Get returns the stored value for name, if any.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[name]
	return value, ok
}

// Set records value under name and saves the store. Save failures are
// swallowed; the in-memory value is retained either way.
func (s *Store) Set(name, value string) {
	s.mu.Lock()
	s.values[name] = value
	s.mu.Unlock()

	if err := s.save(); err != nil {
		s.log.WithFields(map[string]any{"key": name}).Debug("preference save failed, value kept in memory")
	}
}

// save writes the store to disk atomically.
func (s *Store) save() error {
	s.mu.RLock()
	file := storeFile{
		Version: "1.0",
		Values:  make(map[string]string, len(s.values)),
	}
	for k, v := range s.values {
		file.Values[k] = v
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}
