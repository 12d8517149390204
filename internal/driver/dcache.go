package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"vecsmith/internal/gen"
	"vecsmith/internal/project"
	"vecsmith/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache remembers which programs of a corpus were already written, keyed
// by the fingerprint of their generator options. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload describes one generated program on disk.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Seed   uint64
	Path   string
	Digest project.Digest

	Vectors       int
	Views         int
	ChecksumLines int
}

// fingerprint is everything that influences the program text.
type fingerprint struct {
	Tool             string
	Seed             uint64
	Globals          int
	Locals           int
	Statements       int
	Checksum         bool
	Prefix           string
	DeferInitPercent int
}

// CacheKey hashes the options that determine a program's text, together
// with the tool version.
func CacheKey(opts gen.Options) (project.Digest, error) {
	data, err := msgpack.Marshal(&fingerprint{
		Tool:             version.Current().Version,
		Seed:             opts.Seed,
		Globals:          opts.Globals,
		Locals:           opts.Locals,
		Statements:       opts.Statements,
		Checksum:         opts.Checksum,
		Prefix:           opts.Prefix,
		DeferInitPercent: opts.DeferInitPercent,
	})
	if err != nil {
		return project.Digest{}, fmt.Errorf("cache key: %w", err)
	}
	return project.Sum(data), nil
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "progs", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Entries written by another schema are reported as
// misses.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, чтобы параллельный Get не увидел полуудалённое
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
