// Package cache stores inspection results on disk, keyed by a digest of the
// package sources and the target settings.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"enumkit/internal/project"
)

// SchemaVersion changes whenever a cached payload changes shape.
const SchemaVersion uint16 = 1

// ErrSchema reports an entry written by a different schema version.
var ErrSchema = errors.New("cache: schema mismatch")

// Disk is a directory of msgpack entries. Safe for concurrent use.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

type envelope struct {
	Schema  uint16
	Written time.Time
	Payload msgpack.RawMessage
}

// DefaultDir is $XDG_CACHE_HOME/app or ~/.cache/app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open creates dir if needed and returns a cache rooted there.
func Open(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Disk) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Disk) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "targets", key.String()+".mp")
}

// Put encodes v and atomically replaces the entry for key.
func (c *Disk) Put(key project.Digest, v any) (err error) {
	if c == nil {
		return nil
	}
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(&envelope{Schema: SchemaVersion, Written: time.Now().UTC(), Payload: payload}); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get decodes the entry for key into out. A missing entry is (false, nil);
// an entry from another schema is (false, ErrSchema).
func (c *Disk) Get(key project.Digest, out any) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var env envelope
	if err := msgpack.NewDecoder(f).Decode(&env); err != nil {
		return false, fmt.Errorf("cache: decode: %w", err)
	}
	if env.Schema != SchemaVersion {
		return false, fmt.Errorf("%w: entry has %d, want %d", ErrSchema, env.Schema, SchemaVersion)
	}
	if err := msgpack.Unmarshal(env.Payload, out); err != nil {
		return false, fmt.Errorf("cache: decode payload: %w", err)
	}
	return true, nil
}

// Len counts stored entries.
func (c *Disk) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	matches, err := filepath.Glob(filepath.Join(c.dir, "targets", "*.mp"))
	if err != nil {
		return 0
	}
	return len(matches)
}

// DropAll removes every entry. The cache stays usable afterwards.
func (c *Disk) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
