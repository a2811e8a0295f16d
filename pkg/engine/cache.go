package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// cacheKey identifies one (projectID, revision) fetch.
type cacheKey struct {
	projectID string
	revision  int
}

// cacheEntry pairs the fetched metadata with a content fingerprint, so a
// provider that (incorrectly) returns different content for a revision it
// already served is caught rather than silently trusted.
type cacheEntry struct {
	meta        *ProjectSyncMetadata
	fingerprint string
}

// CachingBaseProvider wraps a BaseProvider with an in-memory memoization
// layer keyed by (projectID, revision). It is explicitly not required to be
// safe for concurrent use by multiple goroutines without the mutex below —
// a BaseProvider sits behind a single merge run's sequential component loop,
// so contention is not expected, but the lock costs nothing and rules out a
// class of bugs if that assumption ever changes.
type CachingBaseProvider struct {
	inner BaseProvider

	// cacheDir, if non-empty, persists each entry to disk as JSON so a
	// later process run against the same project revision can skip the
	// backend fetch entirely, not just repeat calls within this run.
	cacheDir string

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

// NewCachingBaseProvider wraps inner so repeated MergeFiles calls against
// the same project revision only hit the design tool's backend once. When
// cacheDir is non-empty, entries also persist across process runs.
func NewCachingBaseProvider(inner BaseProvider, cacheDir string) *CachingBaseProvider {
	return &CachingBaseProvider{inner: inner, cacheDir: cacheDir, cache: make(map[cacheKey]cacheEntry)}
}

// Provide implements BaseProvider's call shape so a *CachingBaseProvider can
// be used directly as Options.BaseProvider by wrapping it in a closure.
func (c *CachingBaseProvider) Provide(ctx context.Context, projectID string, revision int) (*ProjectSyncMetadata, error) {
	key := cacheKey{projectID: projectID, revision: revision}

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return entry.meta, nil
	}
	c.mu.Unlock()

	if meta, ok := c.readDisk(key); ok {
		c.mu.Lock()
		c.cache[key] = cacheEntry{meta: meta, fingerprint: fingerprintMetadata(meta)}
		c.mu.Unlock()
		return meta, nil
	}

	meta, err := c.inner(ctx, projectID, revision)
	if err != nil {
		return nil, err
	}

	fingerprint := fingerprintMetadata(meta)
	c.mu.Lock()
	if entry, ok := c.cache[key]; ok && entry.fingerprint != fingerprint {
		c.mu.Unlock()
		return nil, fmt.Errorf("plasmerge/engine: base provider returned different content for project %s revision %d than a previous call", projectID, revision)
	}
	c.cache[key] = cacheEntry{meta: meta, fingerprint: fingerprint}
	c.mu.Unlock()

	c.writeDisk(key, meta)
	return meta, nil
}

func fingerprintMetadata(meta *ProjectSyncMetadata) string {
	h := sha256.New()
	for _, c := range meta.Components {
		h.Write([]byte(c.UUID.String()))
		h.Write([]byte(c.FileContent))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// diskPath is where key's entry would live under cacheDir, or "" if
// persistence isn't configured.
func (c *CachingBaseProvider) diskPath(key cacheKey) string {
	if c.cacheDir == "" {
		return ""
	}
	return filepath.Join(c.cacheDir, key.projectID, fmt.Sprintf("%d.json", key.revision))
}

// readDisk loads a previously persisted entry, if cacheDir is configured
// and the file is present and parses. Any failure is treated as a miss:
// the in-memory path re-fetches from inner rather than surfacing a disk
// error for what is purely an optimization.
func (c *CachingBaseProvider) readDisk(key cacheKey) (*ProjectSyncMetadata, bool) {
	path := c.diskPath(key)
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var meta ProjectSyncMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, false
	}
	return &meta, true
}

func (c *CachingBaseProvider) writeDisk(key cacheKey, meta *ProjectSyncMetadata) {
	path := c.diskPath(key)
	if path == "" {
		return
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}
