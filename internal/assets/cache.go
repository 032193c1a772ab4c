package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// snapshot is one immutable generation of an entry's bytes. Decoded values
// are memoized per decoder type for the lifetime of the snapshot.
type snapshot struct {
	data   []byte
	gen    uint64
	empty  bool
	values sync.Map // decodeKey -> *decodeSlot
}

// entry is the cache's master record for one asset path.
type entry struct {
	path  string
	class Class
	file  string

	latch    sync.Mutex // serializes loads and writes
	snap     atomic.Pointer[snapshot]
	gen      atomic.Uint64
	refs     atomic.Int64
	poisoned atomic.Bool
}

// Cache maps asset paths to entries. It is safe for concurrent use from any
// goroutine.
type Cache struct {
	root     Root
	manifest *Manifest
	logger   *log.Logger

	mu      sync.RWMutex
	entries map[string]*entry

	poisoned atomic.Bool
	loads    atomic.Uint64
}

// NewCache creates an empty cache over root. Only paths in manifest can be
// requested.
func NewCache(root Root, manifest *Manifest, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cache{
		root:     root,
		manifest: manifest,
		logger:   logger,
		entries:  make(map[string]*entry, manifest.Len()),
	}
}

// Root returns the asset root.
func (c *Cache) Root() Root { return c.root }

// Manifest returns the asset list the cache was built with.
func (c *Cache) Manifest() *Manifest { return c.manifest }

// Handle returns a handle for p, loading the file on first request.
// Concurrent first requests for the same path read the file once.
// An absent Optional file is not an error.
func (c *Cache) Handle(p string) (*Handle, error) {
	clean, err := NormalizePath(p)
	if err != nil {
		if errors.Is(err, ErrAssetPathEscape) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q", ErrNotInManifest, p)
	}
	class, ok := c.manifest.entries[clean]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInManifest, clean)
	}

	e, err := c.entry(clean, class)
	if err != nil {
		return nil, err
	}
	if _, err := c.load(e); err != nil {
		return nil, err
	}

	e.refs.Add(1)
	return &Handle{cache: c, entry: e}, nil
}

// entry returns the entry for a manifest path, creating it if needed.
// The registry lock is held only for the lookup and insert.
func (c *Cache) entry(clean string, class Class) (*entry, error) {
	c.mu.RLock()
	e := c.entries[clean]
	c.mu.RUnlock()
	if e != nil {
		return e, nil
	}

	file, err := c.root.Join(clean)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e = c.entries[clean]; e == nil {
		e = &entry{path: clean, class: class, file: file}
		c.entries[clean] = e
	}
	return e, nil
}

func (c *Cache) lookup(clean string) *entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[clean]
}

// load returns the resident snapshot of e, reading the file under the
// entry latch if nothing is resident.
func (c *Cache) load(e *entry) (*snapshot, error) {
	if e.poisoned.Load() {
		return nil, fmt.Errorf("%w: %s", ErrPoisoned, e.path)
	}
	if s := e.snap.Load(); s != nil {
		return s, nil
	}

	e.latch.Lock()
	defer e.latch.Unlock()

	if e.poisoned.Load() {
		return nil, fmt.Errorf("%w: %s", ErrPoisoned, e.path)
	}
	if s := e.snap.Load(); s != nil {
		return s, nil
	}

	data, err := os.ReadFile(e.file)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && e.class.Creatable():
		data = nil
	default:
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	s := &snapshot{
		data:  data,
		gen:   e.gen.Load(),
		empty: e.class.Creatable() && len(data) == 0,
	}
	e.snap.Store(s)
	c.loads.Add(1)
	c.logger.Debug("asset loaded", "path", e.path, "bytes", len(data), "generation", s.gen)
	return s, nil
}

// store writes data through a temp file and installs it as the new
// generation.
func (c *Cache) store(e *entry, data []byte) error {
	e.latch.Lock()
	defer e.latch.Unlock()

	if err := writeFileAtomic(e.file, data, e.class.Creatable()); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	gen := e.gen.Add(1)
	e.snap.Store(&snapshot{
		data:  bytes.Clone(data),
		gen:   gen,
		empty: e.class.Creatable() && len(data) == 0,
	})
	c.logger.Debug("asset written", "path", e.path, "bytes", len(data), "generation", gen)
	return nil
}

// Invalidate marks p as changed on disk. Writable entries drop their
// resident bytes and advance their generation. A Static asset poisons its
// entry and the cache integrity flag.
func (c *Cache) Invalidate(p string) {
	clean, err := NormalizePath(p)
	if err != nil {
		return
	}
	class, ok := c.manifest.entries[clean]
	if !ok {
		return
	}

	if class == Static {
		c.logger.Error("static asset modified on disk", "path", clean)
		if e, err := c.entry(clean, class); err == nil {
			e.poisoned.Store(true)
		}
		c.poisoned.Store(true)
		return
	}

	e := c.lookup(clean)
	if e == nil {
		return
	}
	e.latch.Lock()
	gen := e.gen.Add(1)
	e.snap.Store(nil)
	e.latch.Unlock()
	c.logger.Debug("asset invalidated", "path", clean, "generation", gen)
}

// Release drops the resident bytes of p. Live handles stay valid and reload
// on their next read.
func (c *Cache) Release(p string) {
	clean, err := NormalizePath(p)
	if err != nil {
		return
	}
	if e := c.lookup(clean); e != nil {
		e.latch.Lock()
		e.snap.Store(nil)
		e.latch.Unlock()
	}
}

// Prune drops the resident bytes of every entry that no handle refers to.
// It returns the number of entries pruned.
func (c *Cache) Prune() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, e := range c.entries {
		if e.refs.Load() > 0 || e.snap.Load() == nil {
			continue
		}
		e.latch.Lock()
		if e.refs.Load() == 0 && e.snap.Load() != nil {
			e.snap.Store(nil)
			n++
		}
		e.latch.Unlock()
	}
	if n > 0 {
		c.logger.Debug("pruned assets", "count", n)
	}
	return n
}

// Poisoned reports whether any Static asset has changed on disk since the
// cache was created.
func (c *Cache) Poisoned() bool {
	return c.poisoned.Load()
}

// Resident reports whether p currently has bytes in memory.
func (c *Cache) Resident(p string) bool {
	clean, err := NormalizePath(p)
	if err != nil {
		return false
	}
	e := c.lookup(clean)
	return e != nil && e.snap.Load() != nil
}

// Loads returns how many times a file has been read from disk.
func (c *Cache) Loads() uint64 {
	return c.loads.Load()
}

func writeFileAtomic(file string, data []byte, mkdir bool) error {
	dir := filepath.Dir(file)
	if mkdir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(file); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(file)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, file); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
