package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// cacheFileExtension is the file extension used for cache entries.
const cacheFileExtension = ".json"

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// Stats describes the contents of a store.
type Stats struct {
	Entries int
	Expired int
	Bytes   int64
}

// FileStore caches entries as JSON files in one directory.
// Safe for concurrent use.
type FileStore struct {
	directory string
	enabled   bool
	ttl       time.Duration
	now       func() time.Time

	mu sync.RWMutex
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

// NewFileStore creates a store in directory, creating it if needed.
// A disabled store accepts no writes and reports every read as ErrCacheDisabled.
func NewFileStore(directory string, enabled bool, ttl time.Duration, opts ...Option) (*FileStore, error) {
	s := &FileStore{enabled: enabled, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if !enabled {
		return s, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	s.directory = directory
	return s, nil
}

// Get retrieves an entry by key.
// Returns ErrCacheNotFound if the entry doesn't exist and ErrCacheExpired if
// it has expired; an expired entry is removed.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.keyToFilePath(key)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}

	if entry.ExpiredAt(s.now()) {
		_ = os.Remove(filePath)
		return nil, ErrCacheExpired
	}

	return &entry, nil
}

// Set stores data under key, overwriting any existing entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := NewEntry(key, data, s.now(), s.ttl)
	entryData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	filePath := s.keyToFilePath(key)

	// Write to a temporary file first, then rename for atomicity.
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return nil
}

// Delete removes an entry by key. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.keyToFilePath(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// DeletePrefix removes every entry whose key starts with prefix and returns
// how many were removed.
func (s *FileStore) DeletePrefix(prefix string) (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}
	if prefix == "" {
		return 0, ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	safePrefix := sanitizeKey(prefix)
	return s.removeMatching(func(name string) bool {
		return strings.HasPrefix(name, safePrefix)
	})
}

// Clear removes all entries from the store.
func (s *FileStore) Clear() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeMatching(func(string) bool { return true })
}

// CleanupExpired removes all expired entries.
func (s *FileStore) CleanupExpired() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	return s.removeMatching(func(name string) bool {
		entry, err := readEntry(filepath.Join(s.directory, name))
		return err == nil && entry.ExpiredAt(now)
	})
}

// Stats counts the entries in the store.
func (s *FileStore) Stats() (Stats, error) {
	if !s.enabled {
		return Stats{}, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.entryNames()
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	now := s.now()
	for _, name := range names {
		path := filepath.Join(s.directory, name)
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		stats.Entries++
		stats.Bytes += info.Size()
		if entry, readErr := readEntry(path); readErr == nil && entry.ExpiredAt(now) {
			stats.Expired++
		}
	}
	return stats, nil
}

// IsEnabled returns true if caching is enabled.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the lifetime of new entries.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

// removeMatching deletes the cache files whose names match. Must be called with mu held.
func (s *FileStore) removeMatching(match func(name string) bool) (int, error) {
	names, err := s.entryNames()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		if !match(name) {
			continue
		}
		if removeErr := os.Remove(filepath.Join(s.directory, name)); removeErr != nil && !os.IsNotExist(removeErr) {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", name, removeErr)
		}
		removed++
	}
	return removed, nil
}

// entryNames lists the cache file names in the directory.
func (s *FileStore) entryNames() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == cacheFileExtension {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// keyToFilePath converts a cache key to a file path.
func (s *FileStore) keyToFilePath(key string) string {
	return filepath.Join(s.directory, sanitizeKey(key)+cacheFileExtension)
}

// sanitizeKey makes key safe to use as a file name.
func sanitizeKey(key string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
}

func readEntry(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
