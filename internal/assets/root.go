// Package assets implements the asset registry: the embedded asset list,
// the on-disk root, typed decode/encode through handles, the per-path cache
// with at-most-once loading, and the filesystem watcher that invalidates it.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// RootDirName is the asset directory name next to the executable.
const RootDirName = "assets"

// Root is the absolute, symlink-free asset directory.
type Root struct {
	dir string
}

// OpenRoot canonicalizes dir and checks that it is a directory.
func OpenRoot(dir string) (Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, fmt.Errorf("%w: %s: %w", ErrAssetRootNotFound, dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Root{}, fmt.Errorf("%w: %s: %w", ErrAssetRootNotFound, abs, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return Root{}, fmt.Errorf("%w: %s: %w", ErrAssetRootNotFound, resolved, err)
	}
	if !info.IsDir() {
		return Root{}, fmt.Errorf("%w: %s is not a directory", ErrAssetRootNotFound, resolved)
	}
	return Root{dir: resolved}, nil
}

var executableRoot = sync.OnceValues(func() (Root, error) {
	exe, err := os.Executable()
	if err != nil {
		return Root{}, fmt.Errorf("%w: cannot locate executable: %w", ErrAssetRootNotFound, err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return Root{}, fmt.Errorf("%w: cannot locate executable: %w", ErrAssetRootNotFound, err)
	}
	return OpenRoot(filepath.Join(filepath.Dir(exe), RootDirName))
})

// ResolveRoot returns <exe_dir>/assets. The result is computed once per
// process.
func ResolveRoot() (Root, error) {
	return executableRoot()
}

// Dir returns the absolute root directory.
func (r Root) Dir() string {
	return r.dir
}

// Join resolves a manifest path beneath the root.
func (r Root) Join(rel string) (string, error) {
	clean, err := NormalizePath(rel)
	if err != nil {
		return "", err
	}
	full := filepath.Join(r.dir, filepath.FromSlash(clean))
	if !r.contains(full) {
		return "", fmt.Errorf("%w: %q", ErrAssetPathEscape, rel)
	}
	return full, nil
}

// Rel converts an absolute path under the root into a manifest path.
func (r Root) Rel(abs string) (string, error) {
	rel, err := filepath.Rel(r.dir, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrAssetPathEscape, abs, err)
	}
	return NormalizePath(filepath.ToSlash(rel))
}

func (r Root) contains(full string) bool {
	rel, err := filepath.Rel(r.dir, full)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
