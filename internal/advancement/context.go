package advancement

import (
	"slices"

	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

// ContextKey names one parameter a LootContext may carry.
type ContextKey string

const (
	KeyThisEntity ContextKey = "this_entity"
	KeyOrigin     ContextKey = "origin"
	KeyTool       ContextKey = "tool"
	KeyBlockState ContextKey = "block_state"
)

// ContextKeySet declares which parameters a context of some kind provides.
type ContextKeySet struct {
	Name     string
	Required []ContextKey
	Allowed  []ContextKey
}

func (s ContextKeySet) IsAllowed(k ContextKey) bool {
	return slices.Contains(s.Required, k) || slices.Contains(s.Allowed, k)
}

var (
	// AdvancementEntity is the context of player conditions on every
	// criterion.
	AdvancementEntity = ContextKeySet{
		Name:     "advancement_entity",
		Required: []ContextKey{KeyThisEntity, KeyOrigin},
	}
	AdvancementLocation = ContextKeySet{
		Name:     "advancement_location",
		Required: []ContextKey{KeyThisEntity, KeyOrigin, KeyBlockState},
		Allowed:  []ContextKey{KeyTool},
	}
)

// LootContext carries the parameters conditions are tested against. Nil
// fields are absent.
type LootContext struct {
	Dimension  string
	ThisEntity *Entity
	Origin     *protocol.Vec3
	Tool       *registry.ItemStack
	BlockState *registry.BlockState
}

// PlayerContext is the advancement_entity context of player.
func PlayerContext(player Entity) *LootContext {
	origin := player.Pos
	return &LootContext{Dimension: player.Dimension, ThisEntity: &player, Origin: &origin}
}

func (c *LootContext) Has(k ContextKey) bool {
	if c == nil {
		return false
	}
	switch k {
	case KeyThisEntity:
		return c.ThisEntity != nil
	case KeyOrigin:
		return c.Origin != nil
	case KeyTool:
		return c.Tool != nil
	case KeyBlockState:
		return c.BlockState != nil
	}
	return false
}
