// Package assets handles model file ingestion: extension checks, reading,
// glTF decoding and import into the scene graph.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/gltf-viewer/internal/logger"
)

// Manager runs the ingestion pipeline and owns the shared external resource cache.
type Manager struct {
	cache *Cache
	log   *zap.Logger
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
		log:   logger.Named("assets"),
	}
}

// Load detects, reads, decodes and imports the model at path. It is safe to
// call from a worker goroutine; the returned Asset is not shared.
func (m *Manager) Load(ctx context.Context, path string) (*Asset, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return nil, err
	}

	data, err := ReadFile(ctx, path, kind)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	doc, err := Parse(ctx, data, kind, dir)
	if err != nil {
		return nil, err
	}

	asset, err := Import(ctx, doc, ImportOptions{
		Name:    filepath.Base(path),
		Kind:    kind,
		BaseDir: dir,
		Cache:   m.cache,
	})
	if err != nil {
		return nil, err
	}

	m.log.Info("model imported",
		zap.String("file", asset.Name),
		zap.Stringer("kind", kind),
		zap.Int("bytes", len(data)),
		zap.Int("nodes", asset.Stats.Nodes),
		zap.Int("meshes", asset.Stats.Meshes),
		zap.Int("clips", asset.Stats.Animations))
	return asset, nil
}

// Cache returns the external resource cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops cached resources.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache is an in-memory cache for external model resources. Each key holds
// one entry stamped with the version it was read at; a lookup with a
// different version misses, so edited files are read again.
type Cache struct {
	data map[string]cacheEntry
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

type cacheEntry struct {
	version string
	data    []byte
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]cacheEntry),
	}
}

// FileVersion identifies the content of a file by its size and modification time.
func FileVersion(info os.FileInfo) string {
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano())
}

// Get retrieves the item stored under key at version.
func (c *Cache) Get(key, version string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok && e.version == version {
		c.hits++
		return e.data, true
	}
	c.misses++
	return nil, false
}

// Set stores data under key, replacing any older version.
func (c *Cache) Set(key, version string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = cacheEntry{version: version, data: data}
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]cacheEntry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
