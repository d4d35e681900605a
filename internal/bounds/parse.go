package bounds

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInts reads the command-line range syntax: "5", "5..10", "..10", "5..".
func ParseInts(s string) (Ints, error) {
	return parse(s, func(part string) (int64, error) {
		return strconv.ParseInt(part, 10, 64)
	})
}

// ParseDoubles is ParseInts for floating-point ranges.
func ParseDoubles(s string) (Doubles, error) {
	return parse(s, func(part string) (float64, error) {
		return strconv.ParseFloat(part, 64)
	})
}

func parse[N Number](s string, num func(string) (N, error)) (Bounds[N], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Bounds[N]{}, ErrEmpty
	}
	lo, hi, isRange := strings.Cut(s, "..")
	if !isRange {
		v, err := num(s)
		if err != nil {
			return Bounds[N]{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		return Exactly(v), nil
	}
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if lo == "" && hi == "" {
		return Bounds[N]{}, ErrEmpty
	}
	var min, max *N
	if lo != "" {
		v, err := num(lo)
		if err != nil {
			return Bounds[N]{}, fmt.Errorf("invalid range minimum %q: %w", lo, err)
		}
		min = &v
	}
	if hi != "" {
		v, err := num(hi)
		if err != nil {
			return Bounds[N]{}, fmt.Errorf("invalid range maximum %q: %w", hi, err)
		}
		max = &v
	}
	return New(min, max)
}
