package advancement

import (
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

// Entity is the read-only view of an entity that predicates test.
type Entity struct {
	Type      string
	Dimension string
	Pos       protocol.Vec3
	// BlockAt is the block the entity stands in.
	BlockAt  registry.BlockState
	OnGround bool
	Sneaking bool
	Mainhand registry.ItemStack
}

func (e *Entity) Location() Location {
	return Location{Dimension: e.Dimension, Pos: e.Pos, Block: e.BlockAt}
}

type EntityFlags struct {
	IsOnGround *bool `yaml:"is_on_ground,omitempty"`
	IsSneaking *bool `yaml:"is_sneaking,omitempty"`
}

func (f *EntityFlags) Matches(e *Entity) bool {
	if f == nil {
		return true
	}
	if f.IsOnGround != nil && *f.IsOnGround != e.OnGround {
		return false
	}
	return f.IsSneaking == nil || *f.IsSneaking == e.Sneaking
}

type EntityPredicate struct {
	Type     string             `yaml:"type,omitempty"`
	Distance *DistancePredicate `yaml:"distance,omitempty"`
	Location *LocationPredicate `yaml:"location,omitempty"`
	Flags    *EntityFlags       `yaml:"flags,omitempty"`
	Mainhand *ItemPredicate     `yaml:"mainhand,omitempty"`
}

// Matches tests e as seen from origin. A non-nil predicate never matches a
// missing entity, and a distance constraint never matches without an origin.
func (p *EntityPredicate) Matches(origin *protocol.Vec3, e *Entity) bool {
	if p == nil {
		return true
	}
	if e == nil {
		return false
	}
	if p.Type != "" && p.Type != e.Type {
		return false
	}
	if p.Distance != nil && (origin == nil || !p.Distance.Matches(*origin, e.Pos)) {
		return false
	}
	return p.Location.Matches(e.Location()) && p.Flags.Matches(e) && p.Mainhand.Matches(e.Mainhand)
}
