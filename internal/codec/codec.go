// Package codec composes positional binary codecs. Field order is the wire
// contract: nothing but values is transmitted, so reordering fields of a
// composite changes the format.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Versifine/mcwire/internal/protocol"
)

// Codec pairs a decoder and an encoder for T. Both functions are pure, so a
// Codec can be shared between connections.
type Codec[T any] struct {
	decode func(r io.Reader) (T, error)
	encode func(w io.Writer, v T) error
}

func Of[T any](decode func(r io.Reader) (T, error), encode func(w io.Writer, v T) error) Codec[T] {
	return Codec[T]{decode: decode, encode: encode}
}

func (c Codec[T]) Decode(r io.Reader) (T, error) {
	return c.decode(r)
}

func (c Codec[T]) Encode(w io.Writer, v T) error {
	return c.encode(w, v)
}

// Marshal encodes v into a fresh byte slice.
func (c Codec[T]) Marshal(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one value from data; leftover bytes are an error.
func (c Codec[T]) Unmarshal(data []byte) (T, error) {
	rd := bytes.NewReader(data)
	v, err := c.decode(rd)
	if err != nil {
		var zero T
		return zero, err
	}
	if rd.Len() != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %d bytes", protocol.ErrTrailingBytes, rd.Len())
	}
	return v, nil
}

// Field annotates decode errors of c with name so that a failure deep inside a
// packet reports its full path.
func Field[T any](name string, c Codec[T]) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			v, err := c.decode(r)
			if err != nil {
				return v, protocol.WithField(name, err)
			}
			return v, nil
		},
		encode: func(w io.Writer, v T) error {
			if err := c.encode(w, v); err != nil {
				return fmt.Errorf("encode %s: %w", name, err)
			}
			return nil
		},
	}
}

// Map converts a Codec[A] into a Codec[B]. to may reject a decoded A, which
// fails the decode instead of producing an invalid B.
func Map[A, B any](c Codec[A], to func(A) (B, error), from func(B) A) Codec[B] {
	return Codec[B]{
		decode: func(r io.Reader) (B, error) {
			a, err := c.decode(r)
			if err != nil {
				var zero B
				return zero, err
			}
			return to(a)
		},
		encode: func(w io.Writer, v B) error {
			return c.encode(w, from(v))
		},
	}
}

// Optional prefixes a value with a presence flag. nil means absent.
func Optional[T any](c Codec[T]) Codec[*T] {
	return Codec[*T]{
		decode: func(r io.Reader) (*T, error) {
			present, err := protocol.ReadBool(r)
			if err != nil || !present {
				return nil, err
			}
			v, err := c.decode(r)
			if err != nil {
				return nil, err
			}
			return &v, nil
		},
		encode: func(w io.Writer, v *T) error {
			if err := protocol.WriteBool(w, v != nil); err != nil {
				return err
			}
			if v == nil {
				return nil
			}
			return c.encode(w, *v)
		},
	}
}

// List writes a varint count followed by the elements. A count above max fails
// before the slice is allocated.
func List[T any](c Codec[T], max int) Codec[[]T] {
	return Codec[[]T]{
		decode: func(r io.Reader) ([]T, error) {
			n, err := protocol.ReadVarint(r)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: %d", protocol.ErrNegativeLength, n)
			}
			if int(n) > max {
				return nil, fmt.Errorf("%w: %d elements > %d", protocol.ErrSizeLimit, n, max)
			}
			out := make([]T, 0, n)
			for i := 0; i < int(n); i++ {
				v, err := c.decode(r)
				if err != nil {
					return nil, protocol.WithField(fmt.Sprintf("[%d]", i), err)
				}
				out = append(out, v)
			}
			return out, nil
		},
		encode: func(w io.Writer, v []T) error {
			if len(v) > max {
				return fmt.Errorf("%w: %d elements > %d", protocol.ErrSizeLimit, len(v), max)
			}
			if err := protocol.WriteVarint(w, int32(len(v))); err != nil {
				return err
			}
			for i := range v {
				if err := c.encode(w, v[i]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Unit encodes nothing and always decodes v.
func Unit[T any](v T) Codec[T] {
	return Codec[T]{
		decode: func(io.Reader) (T, error) { return v, nil },
		encode: func(io.Writer, T) error { return nil },
	}
}
