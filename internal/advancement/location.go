package advancement

import (
	"math"

	"github.com/Versifine/mcwire/internal/bounds"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

// Location is a point in a dimension together with the block found there.
type Location struct {
	Dimension string
	Pos       protocol.Vec3
	Block     registry.BlockState
}

type PositionPredicate struct {
	X bounds.Doubles `yaml:"x,omitempty"`
	Y bounds.Doubles `yaml:"y,omitempty"`
	Z bounds.Doubles `yaml:"z,omitempty"`
}

func (p PositionPredicate) Matches(pos protocol.Vec3) bool {
	return p.X.Matches(pos.X) && p.Y.Matches(pos.Y) && p.Z.Matches(pos.Z)
}

type LocationPredicate struct {
	Position  PositionPredicate `yaml:"position,omitempty"`
	Dimension string            `yaml:"dimension,omitempty"`
	Block     *BlockPredicate   `yaml:"block,omitempty"`
}

func (p *LocationPredicate) Matches(l Location) bool {
	if p == nil {
		return true
	}
	if p.Dimension != "" && p.Dimension != l.Dimension {
		return false
	}
	return p.Position.Matches(l.Pos) && p.Block.Matches(l.Block)
}

// DistancePredicate bounds the per-axis, horizontal and absolute distance
// between two points. Horizontal and absolute bounds are compared squared.
type DistancePredicate struct {
	X          bounds.Doubles `yaml:"x,omitempty"`
	Y          bounds.Doubles `yaml:"y,omitempty"`
	Z          bounds.Doubles `yaml:"z,omitempty"`
	Horizontal bounds.Doubles `yaml:"horizontal,omitempty"`
	Absolute   bounds.Doubles `yaml:"absolute,omitempty"`
}

func (p *DistancePredicate) Matches(from, to protocol.Vec3) bool {
	if p == nil {
		return true
	}
	dx, dy, dz := from.X-to.X, from.Y-to.Y, from.Z-to.Z
	if !p.X.Matches(math.Abs(dx)) || !p.Y.Matches(math.Abs(dy)) || !p.Z.Matches(math.Abs(dz)) {
		return false
	}
	if !p.Horizontal.MatchesSqr(dx*dx + dz*dz) {
		return false
	}
	return p.Absolute.MatchesSqr(dx*dx + dy*dy + dz*dz)
}
