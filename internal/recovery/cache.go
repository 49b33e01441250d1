package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"musicreg/pkg/models"
)

// ErrLocked is returned by Lock when another session holds the cache.
var ErrLocked = errors.New("recovery cache is in use by another session")

// FileCache keeps the last saved dossier in a single JSON file. It is a
// best-effort local copy, not a durable store.
type FileCache struct {
	path   string
	logger *log.Logger
	lock   *flock.Flock
	mu     sync.Mutex
}

// NewFileCache returns a cache backed by path. An empty path gives a cache
// that never finds anything and discards writes.
func NewFileCache(path string, logger *log.Logger) *FileCache {
	if logger == nil {
		logger = log.Default()
	}
	c := &FileCache{path: path, logger: logger}
	if path != "" {
		c.lock = flock.New(path + ".lock")
	}
	return c
}

// DefaultPath is ~/.musicreg/draft.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".musicreg", "draft.json")
	}
	return filepath.Join(home, ".musicreg", "draft.json")
}

func (c *FileCache) Path() string { return c.path }

// Lock takes exclusive ownership of the cache for this process.
func (c *FileCache) Lock() error {
	if c.lock == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	ok, err := c.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

func (c *FileCache) Unlock() error {
	if c.lock == nil {
		return nil
	}
	return c.lock.Unlock()
}

// Load reads the cached dossier. A missing, empty or malformed file is
// reported as not found; only I/O failures are returned as errors.
func (c *FileCache) Load() (models.Dossier, bool, error) {
	if c.path == "" {
		return models.Dossier{}, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Dossier{}, false, nil
		}
		return models.Dossier{}, false, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return models.Dossier{}, false, nil
	}

	var d models.Dossier
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Printf("[recovery] ignoring malformed cache %s: %v", c.path, err)
		return models.Dossier{}, false, nil
	}
	return d, true, nil
}

// Store replaces the cached dossier atomically.
func (c *FileCache) Store(d models.Dossier) error {
	if c.path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Clear removes the cached dossier.
func (c *FileCache) Clear() error {
	if c.path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}
