// Package bounds implements optional numeric ranges: both ends may be
// missing, and a missing end never rejects a value.
package bounds

import (
	"errors"
	"fmt"
)

var (
	ErrSwapped = errors.New("min is greater than max")
	ErrEmpty   = errors.New("empty range")
)

type Number interface {
	~int64 | ~float64
}

// Bounds is an immutable [min, max] range. Squared bounds are computed at
// construction for distance checks without a square root.
type Bounds[N Number] struct {
	min, max     N
	minSq, maxSq N
	hasMin       bool
	hasMax       bool
}

type (
	Ints    = Bounds[int64]
	Doubles = Bounds[float64]
)

func build[N Number](min N, hasMin bool, max N, hasMax bool) Bounds[N] {
	b := Bounds[N]{min: min, max: max, hasMin: hasMin, hasMax: hasMax}
	if hasMin {
		b.minSq = min * min
	}
	if hasMax {
		b.maxSq = max * max
	}
	return b
}

// Any matches every value.
func Any[N Number]() Bounds[N] {
	return Bounds[N]{}
}

func Exactly[N Number](v N) Bounds[N] {
	return build(v, true, v, true)
}

func AtLeast[N Number](v N) Bounds[N] {
	return build(v, true, 0, false)
}

func AtMost[N Number](v N) Bounds[N] {
	return build(0, false, v, true)
}

func Between[N Number](min, max N) (Bounds[N], error) {
	if min > max {
		return Bounds[N]{}, fmt.Errorf("%w: %v > %v", ErrSwapped, min, max)
	}
	return build(min, true, max, true), nil
}

// New builds a range from optional ends; nil means unbounded.
func New[N Number](min, max *N) (Bounds[N], error) {
	switch {
	case min != nil && max != nil:
		return Between(*min, *max)
	case min != nil:
		return AtLeast(*min), nil
	case max != nil:
		return AtMost(*max), nil
	default:
		return Any[N](), nil
	}
}

func (b Bounds[N]) Min() (N, bool) { return b.min, b.hasMin }

func (b Bounds[N]) Max() (N, bool) { return b.max, b.hasMax }

func (b Bounds[N]) minPtr() *N {
	if !b.hasMin {
		return nil
	}
	v := b.min
	return &v
}

func (b Bounds[N]) maxPtr() *N {
	if !b.hasMax {
		return nil
	}
	v := b.max
	return &v
}

// IsAny reports whether neither end is set.
func (b Bounds[N]) IsAny() bool {
	return !b.hasMin && !b.hasMax
}

// IsZero lets yaml omitempty drop unbounded ranges.
func (b Bounds[N]) IsZero() bool {
	return b.IsAny()
}

// IsPoint reports whether the range collapses to a single value.
func (b Bounds[N]) IsPoint() bool {
	return b.hasMin && b.hasMax && b.min == b.max
}

func (b Bounds[N]) Matches(v N) bool {
	if b.hasMin && v < b.min {
		return false
	}
	return !b.hasMax || v <= b.max
}

// MatchesSqr tests an already squared value against the squared bounds.
// Bounds are squared as is, so a negative min squares to a positive one:
// AtLeast(-5).MatchesSqr(1) is false.
func (b Bounds[N]) MatchesSqr(vSq N) bool {
	if b.hasMin && vSq < b.minSq {
		return false
	}
	return !b.hasMax || vSq <= b.maxSq
}

func (b Bounds[N]) String() string {
	switch {
	case b.IsPoint():
		return fmt.Sprint(b.min)
	case b.hasMin && b.hasMax:
		return fmt.Sprintf("%v..%v", b.min, b.max)
	case b.hasMin:
		return fmt.Sprintf("%v..", b.min)
	case b.hasMax:
		return fmt.Sprintf("..%v", b.max)
	default:
		return ".."
	}
}
