package session

import (
	"math"

	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

// World answers which block is at a position.
type World interface {
	Dimension() string
	BlockAt(pos protocol.Vec3) registry.BlockState
}

// FlatWorld is solid stone below y=0 and air above.
type FlatWorld struct{}

func (FlatWorld) Dimension() string { return "minecraft:overworld" }

func (FlatWorld) BlockAt(pos protocol.Vec3) registry.BlockState {
	if math.Floor(pos.Y) < 0 {
		return registry.BlockState{Block: registry.Block{Name: "minecraft:stone"}}
	}
	return registry.BlockState{Block: registry.Block{Name: "minecraft:air"}}
}
