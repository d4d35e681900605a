package codec

import "io"

// F is one positional field of a composite record: a codec plus the accessor
// that extracts the field from the record.
type F[T, A any] struct {
	c   Codec[A]
	get func(T) A
}

// Get declares a named field. The name only appears in error paths; it is
// never written to the wire.
func Get[T, A any](name string, c Codec[A], get func(T) A) F[T, A] {
	return F[T, A]{c: Field(name, c), get: get}
}

// Embed declares a field that adds no path segment of its own, for tagged
// unions whose variants already name themselves.
func Embed[T, A any](c Codec[A], get func(T) A) F[T, A] {
	return F[T, A]{c: c, get: get}
}

func (f F[T, A]) put(w io.Writer, v T) error {
	return f.c.encode(w, f.get(v))
}

func (f F[T, A]) take(r io.Reader) (A, error) {
	return f.c.decode(r)
}

func encodeAll[T any](puts ...func(io.Writer, T) error) func(io.Writer, T) error {
	return func(w io.Writer, v T) error {
		for _, put := range puts {
			if err := put(w, v); err != nil {
				return err
			}
		}
		return nil
	}
}

// Composite1 encodes 1 field in declared order and decodes them in the same order into ctor.
func Composite1[T, A any](fa F[T, A], ctor func(A) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a), nil
		},
		encode: encodeAll(fa.put),
	}
}

// Composite2 encodes 2 fields in declared order and decodes them in the same order into ctor.
func Composite2[T, A, B any](fa F[T, A], fb F[T, B], ctor func(A, B) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b), nil
		},
		encode: encodeAll(fa.put, fb.put),
	}
}

// Composite3 encodes 3 fields in declared order and decodes them in the same order into ctor.
func Composite3[T, A, B, C any](fa F[T, A], fb F[T, B], fc F[T, C], ctor func(A, B, C) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			c, err := fc.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b, c), nil
		},
		encode: encodeAll(fa.put, fb.put, fc.put),
	}
}

// Composite4 encodes 4 fields in declared order and decodes them in the same order into ctor.
func Composite4[T, A, B, C, D any](fa F[T, A], fb F[T, B], fc F[T, C], fd F[T, D], ctor func(A, B, C, D) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			c, err := fc.take(r)
			if err != nil {
				return zero, err
			}
			d, err := fd.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b, c, d), nil
		},
		encode: encodeAll(fa.put, fb.put, fc.put, fd.put),
	}
}

// Composite5 encodes 5 fields in declared order and decodes them in the same order into ctor.
func Composite5[T, A, B, C, D, E any](fa F[T, A], fb F[T, B], fc F[T, C], fd F[T, D], fe F[T, E], ctor func(A, B, C, D, E) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			c, err := fc.take(r)
			if err != nil {
				return zero, err
			}
			d, err := fd.take(r)
			if err != nil {
				return zero, err
			}
			e, err := fe.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b, c, d, e), nil
		},
		encode: encodeAll(fa.put, fb.put, fc.put, fd.put, fe.put),
	}
}

// Composite6 encodes 6 fields in declared order and decodes them in the same order into ctor.
func Composite6[T, A, B, C, D, E, G any](fa F[T, A], fb F[T, B], fc F[T, C], fd F[T, D], fe F[T, E], fg F[T, G], ctor func(A, B, C, D, E, G) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			c, err := fc.take(r)
			if err != nil {
				return zero, err
			}
			d, err := fd.take(r)
			if err != nil {
				return zero, err
			}
			e, err := fe.take(r)
			if err != nil {
				return zero, err
			}
			g, err := fg.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b, c, d, e, g), nil
		},
		encode: encodeAll(fa.put, fb.put, fc.put, fd.put, fe.put, fg.put),
	}
}

// Composite7 encodes 7 fields in declared order and decodes them in the same order into ctor.
func Composite7[T, A, B, C, D, E, G, H any](fa F[T, A], fb F[T, B], fc F[T, C], fd F[T, D], fe F[T, E], fg F[T, G], fh F[T, H], ctor func(A, B, C, D, E, G, H) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			c, err := fc.take(r)
			if err != nil {
				return zero, err
			}
			d, err := fd.take(r)
			if err != nil {
				return zero, err
			}
			e, err := fe.take(r)
			if err != nil {
				return zero, err
			}
			g, err := fg.take(r)
			if err != nil {
				return zero, err
			}
			h, err := fh.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b, c, d, e, g, h), nil
		},
		encode: encodeAll(fa.put, fb.put, fc.put, fd.put, fe.put, fg.put, fh.put),
	}
}

// Composite8 encodes 8 fields in declared order and decodes them in the same order into ctor.
func Composite8[T, A, B, C, D, E, G, H, I any](fa F[T, A], fb F[T, B], fc F[T, C], fd F[T, D], fe F[T, E], fg F[T, G], fh F[T, H], fi F[T, I], ctor func(A, B, C, D, E, G, H, I) T) Codec[T] {
	return Codec[T]{
		decode: func(r io.Reader) (T, error) {
			var zero T
			a, err := fa.take(r)
			if err != nil {
				return zero, err
			}
			b, err := fb.take(r)
			if err != nil {
				return zero, err
			}
			c, err := fc.take(r)
			if err != nil {
				return zero, err
			}
			d, err := fd.take(r)
			if err != nil {
				return zero, err
			}
			e, err := fe.take(r)
			if err != nil {
				return zero, err
			}
			g, err := fg.take(r)
			if err != nil {
				return zero, err
			}
			h, err := fh.take(r)
			if err != nil {
				return zero, err
			}
			i, err := fi.take(r)
			if err != nil {
				return zero, err
			}
			return ctor(a, b, c, d, e, g, h, i), nil
		},
		encode: encodeAll(fa.put, fb.put, fc.put, fd.put, fe.put, fg.put, fh.put, fi.put),
	}
}
