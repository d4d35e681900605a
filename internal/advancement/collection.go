package advancement

import (
	"slices"

	"github.com/Versifine/mcwire/internal/bounds"
)

// CollectionContents matches when every predicate is satisfied by at least
// one element. One element may satisfy several predicates. With no
// predicates it matches any collection, including an empty one.
type CollectionContents[T any, P Predicate[T]] []P

func (c CollectionContents[T, P]) Matches(items []T) bool {
	switch len(c) {
	case 0:
		return true
	case 1:
		return slices.ContainsFunc(items, c[0].Matches)
	}
	pending := slices.Clone([]P(c))
	for _, it := range items {
		pending = slices.DeleteFunc(pending, func(p P) bool { return p.Matches(it) })
		if len(pending) == 0 {
			return true
		}
	}
	return false
}

// CountEntry matches when the number of elements satisfying Test is within
// Count.
type CountEntry[T any, P Predicate[T]] struct {
	Test  P           `yaml:"test"`
	Count bounds.Ints `yaml:"count"`
}

func (e CountEntry[T, P]) Matches(items []T) bool {
	n := 0
	for _, it := range items {
		if e.Test.Matches(it) {
			n++
		}
	}
	return e.Count.Matches(int64(n))
}

// CollectionCounts matches when every entry matches; each entry counts over
// the whole collection independently.
type CollectionCounts[T any, P Predicate[T]] []CountEntry[T, P]

func (c CollectionCounts[T, P]) Matches(items []T) bool {
	for _, e := range c {
		if !e.Matches(items) {
			return false
		}
	}
	return true
}

// CollectionPredicate combines the collection checks with a bound on the
// collection size.
type CollectionPredicate[T any, P Predicate[T]] struct {
	Contains CollectionContents[T, P] `yaml:"contains,omitempty"`
	Counts   CollectionCounts[T, P]   `yaml:"count,omitempty"`
	Size     bounds.Ints              `yaml:"size,omitempty"`
}

func (p *CollectionPredicate[T, P]) Matches(items []T) bool {
	if p == nil {
		return true
	}
	return p.Size.Matches(int64(len(items))) && p.Contains.Matches(items) && p.Counts.Matches(items)
}
