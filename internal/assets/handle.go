package assets

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handle is a shared view of one cache entry. Close it when done so the
// cache can prune the resident bytes.
type Handle struct {
	cache  *Cache
	entry  *entry
	closed atomic.Bool
}

// Path returns the normalized asset path.
func (h *Handle) Path() string { return h.entry.path }

// Class returns the integrity class from the asset list.
func (h *Handle) Class() Class { return h.entry.class }

// Generation returns the number of accepted content changes so far.
func (h *Handle) Generation() uint64 { return h.entry.gen.Load() }

// Bytes returns the resident bytes, loading them if needed. The slice is
// shared and must not be modified.
func (h *Handle) Bytes() ([]byte, error) {
	s, err := h.cache.load(h.entry)
	if err != nil {
		return nil, err
	}
	if s.empty {
		return nil, fmt.Errorf("%w: %s", ErrEmptyOptional, h.entry.path)
	}
	return s.data, nil
}

// Close releases this holder. It is safe to call more than once.
func (h *Handle) Close() error {
	if h.closed.CompareAndSwap(false, true) {
		h.entry.refs.Add(-1)
	}
	return nil
}

type decodeKey struct {
	decoder any
	value   reflect.Type
}

// memoKey returns the slot key for dec. Decoders that cannot be compared,
// such as DecoderFunc, are not memoized.
func memoKey[T any](dec Decoder[T]) (decodeKey, bool) {
	v := reflect.ValueOf(dec)
	if !v.IsValid() || v.Kind() == reflect.Func || !v.Comparable() {
		return decodeKey{}, false
	}
	return decodeKey{decoder: dec, value: reflect.TypeFor[T]()}, true
}

type decodeSlot struct {
	once sync.Once
	v    any
	err  error
}

// Read decodes the current bytes of h with dec. The decoded value is
// memoized for the current generation per comparable decoder value, so
// concurrent readers decode once and share the result; treat it as
// read-only. Byte slices are copied for each caller.
func Read[T any](h *Handle, dec Decoder[T]) (T, error) {
	var zero T

	s, err := h.cache.load(h.entry)
	if err != nil {
		return zero, err
	}
	if s.empty {
		return zero, fmt.Errorf("%w: %s", ErrEmptyOptional, h.entry.path)
	}

	key, ok := memoKey(dec)
	if !ok {
		out, err := dec.Decode(s.data)
		if err != nil {
			return zero, decodeError(h.entry.path, err)
		}
		return out, nil
	}

	v, _ := s.values.LoadOrStore(key, new(decodeSlot))
	slot := v.(*decodeSlot)
	slot.once.Do(func() {
		slot.v, slot.err = dec.Decode(s.data)
	})
	if slot.err != nil {
		return zero, decodeError(h.entry.path, slot.err)
	}
	out, _ := slot.v.(T)
	if b, ok := any(out).([]byte); ok {
		out, _ = any(bytes.Clone(b)).(T)
	}
	return out, nil
}

// ReadOrDefault reads an Optional asset. If the file is absent or empty it
// persists def() through enc and returns it.
func ReadOrDefault[T any](h *Handle, dec Decoder[T], enc Encoder[T], def func() T) (T, error) {
	var zero T
	if h.entry.class != Optional {
		return zero, fmt.Errorf("%w: read-or-default on %s asset %s", ErrUnsupported, h.entry.class, h.entry.path)
	}

	v, err := Read(h, dec)
	if !errors.Is(err, ErrEmptyOptional) {
		return v, err
	}

	d := def()
	if err := Write(h, enc, &d); err != nil {
		return zero, err
	}
	h.cache.logger.Info("created default asset", "path", h.entry.path)
	return d, nil
}

// Write encodes v and persists it if the asset class is writable. Static
// assets return ErrUnsupported and the file is left untouched.
func Write[T any](h *Handle, enc Encoder[T], v *T) error {
	if !h.entry.class.Writable() {
		return fmt.Errorf("%w: write to %s asset %s", ErrUnsupported, h.entry.class, h.entry.path)
	}
	data, err := enc.Encode(v)
	if err != nil {
		return &EncodeError{Path: h.entry.path, Err: err}
	}
	return h.cache.store(h.entry, data)
}
