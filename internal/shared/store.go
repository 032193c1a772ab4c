// Package shared provides a type-indexed container holding at most one value
// per concrete type. Scenes use it to reach process-wide collaborators
// (asset cache, render queue, settings, audio) without holding references to
// each other.
//
// A Store is confined to the logic goroutine and is not safe for concurrent
// use. Values that must cross goroutines are inserted in their own
// thread-safe forms.
package shared

import (
	"fmt"
	"reflect"
)

// Store holds one value per type.
type Store struct {
	items map[reflect.Type]any // values are *T
}

// New creates an empty store.
func New() *Store {
	return &Store{items: make(map[reflect.Type]any)}
}

// Push stores v, returning the previous value of the same type if any.
func Push[T any](s *Store, v T) (prev T, ok bool) {
	key := reflect.TypeFor[T]()
	if old, found := s.items[key]; found {
		prev, ok = *old.(*T), true
	}
	s.items[key] = &v
	return prev, ok
}

// Pop removes and returns the value of type T.
func Pop[T any](s *Store) (T, bool) {
	key := reflect.TypeFor[T]()
	old, found := s.items[key]
	if !found {
		var zero T
		return zero, false
	}
	delete(s.items, key)
	return *old.(*T), true
}

// Get returns a copy of the value of type T.
func Get[T any](s *Store) (T, bool) {
	p, ok := GetMut[T](s)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// GetMut returns a pointer to the stored value of type T. Writes through the
// pointer update the store.
func GetMut[T any](s *Store) (*T, bool) {
	v, ok := s.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Require is Get that reports a missing value as an error.
func Require[T any](s *Store) (T, error) {
	v, ok := Get[T](s)
	if !ok {
		return v, fmt.Errorf("shared: no %s in store", reflect.TypeFor[T]())
	}
	return v, nil
}

// Len returns the number of stored values.
func (s *Store) Len() int {
	return len(s.items)
}
