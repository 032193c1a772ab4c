package assets

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// Decoder turns raw asset bytes into a value. Implementations must not keep
// a reference to data after returning.
type Decoder[T any] interface {
	Decode(data []byte) (T, error)
}

// Encoder turns a value into bytes. It must be deterministic for equal
// inputs.
type Encoder[T any] interface {
	Encode(v *T) ([]byte, error)
}

// Codec is a Decoder and Encoder for the same type.
type Codec[T any] interface {
	Decoder[T]
	Encoder[T]
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc[T any] func(data []byte) (T, error)

// Decode calls f(data).
func (f DecoderFunc[T]) Decode(data []byte) (T, error) { return f(data) }

// EncoderFunc adapts a function to Encoder.
type EncoderFunc[T any] func(v *T) ([]byte, error)

// Encode calls f(v).
func (f EncoderFunc[T]) Encode(v *T) ([]byte, error) { return f(v) }

var errInvalidUTF8 = errors.New("invalid UTF-8 text")

// TextCodec reads and writes UTF-8 text.
type TextCodec struct{}

// Decode copies data into a string.
func (TextCodec) Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}

// Encode returns the bytes of *v.
func (TextCodec) Encode(v *string) ([]byte, error) {
	return []byte(*v), nil
}

// BytesCodec passes bytes through unchanged.
type BytesCodec struct{}

// Decode returns a copy of data.
func (BytesCodec) Decode(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// Encode returns a copy of *v.
func (BytesCodec) Encode(v *[]byte) ([]byte, error) {
	return bytes.Clone(*v), nil
}
