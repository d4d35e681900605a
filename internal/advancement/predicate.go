// Package advancement evaluates criterion predicates against snapshots of
// game state and grants criteria to sessions through triggers.
//
// Every predicate treats an absent constraint as a wildcard: a nil predicate
// pointer, an empty name list or an unbounded range matches anything.
package advancement

import (
	"slices"

	"github.com/Versifine/mcwire/internal/bounds"
	"github.com/Versifine/mcwire/internal/registry"
)

type Predicate[T any] interface {
	Matches(v T) bool
}

type PredicateFunc[T any] func(v T) bool

func (f PredicateFunc[T]) Matches(v T) bool { return f(v) }

type ItemPredicate struct {
	Items []string    `yaml:"items,omitempty"`
	Count bounds.Ints `yaml:"count,omitempty"`
}

func (p *ItemPredicate) Matches(s registry.ItemStack) bool {
	if p == nil {
		return true
	}
	if len(p.Items) > 0 && !slices.Contains(p.Items, s.Item.Name) {
		return false
	}
	return p.Count.Matches(int64(s.Count))
}

type BlockPredicate struct {
	Blocks []string          `yaml:"blocks,omitempty"`
	State  map[string]string `yaml:"state,omitempty"`
}

func (p *BlockPredicate) Matches(s registry.BlockState) bool {
	if p == nil {
		return true
	}
	if len(p.Blocks) > 0 && !slices.Contains(p.Blocks, s.Block.Name) {
		return false
	}
	return matchState(p.State, s)
}

func matchState(want map[string]string, s registry.BlockState) bool {
	for k, v := range want {
		if got, ok := s.Properties[k]; !ok || got != v {
			return false
		}
	}
	return true
}
