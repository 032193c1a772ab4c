// Package registry maps scene names to factories. Scene packages register
// themselves in init() so the CLI and the runtime can pick the first scene
// by name without importing every scene.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/millennium-run/internal/scene"
)

// Factory creates a fresh scene.
type Factory func() scene.Scene

// Info describes a registered scene.
type Info struct {
	Name        string
	Description string
}

type registration struct {
	info    Info
	factory Factory
}

var (
	scenes = make(map[string]registration)
	mu     sync.RWMutex
)

func key(name string) string { return strings.ToLower(name) }

// Register adds a scene factory. Names are matched case-insensitively.
// Panics if the name is already taken.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	k := key(name)
	if _, exists := scenes[k]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", name))
	}
	scenes[k] = registration{info: Info{Name: name, Description: description}, factory: f}
}

// List returns every registered scene sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(scenes))
	for _, r := range scenes {
		result = append(result, r.info)
	}
	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Names returns the registered names sorted.
func Names() []string {
	infos := List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// Create instantiates the scene registered under name.
func Create(name string) (scene.Scene, error) {
	mu.RLock()
	r, ok := scenes[key(name)]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return r.factory(), nil
}

// Exists reports whether name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenes[key(name)]
	return ok
}
