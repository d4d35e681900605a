package codec

import (
	"fmt"
	"io"
)

// Dispatch builds a tagged-union codec: the tag is written first, then the
// body using the codec selected for that tag. codecFor must return an error
// for tags that have no variant.
func Dispatch[K comparable, V any](tag Codec[K], tagOf func(V) K, codecFor func(K) (Codec[V], error)) Codec[V] {
	return Codec[V]{
		decode: func(r io.Reader) (V, error) {
			var zero V
			k, err := tag.decode(r)
			if err != nil {
				return zero, err
			}
			c, err := codecFor(k)
			if err != nil {
				return zero, err
			}
			return c.decode(r)
		},
		encode: func(w io.Writer, v V) error {
			k := tagOf(v)
			c, err := codecFor(k)
			if err != nil {
				return err
			}
			if err := tag.encode(w, k); err != nil {
				return err
			}
			return c.encode(w, v)
		},
	}
}

// Variant narrows a codec of a concrete variant type S into a codec of the
// union interface V. Encoding a V that is not an S fails.
func Variant[V, S any](c Codec[S]) Codec[V] {
	return Codec[V]{
		decode: func(r io.Reader) (V, error) {
			s, err := c.decode(r)
			if err != nil {
				var zero V
				return zero, err
			}
			v, ok := any(s).(V)
			if !ok {
				var zero V
				return zero, fmt.Errorf("variant %T does not implement %T", s, zero)
			}
			return v, nil
		},
		encode: func(w io.Writer, v V) error {
			s, ok := any(v).(S)
			if !ok {
				var want S
				return fmt.Errorf("cannot encode %T as %T", v, want)
			}
			return c.encode(w, s)
		},
	}
}
