package clientbound

import (
	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

type BlockUpdate struct {
	Pos   protocol.BlockPos
	Block registry.Block
}

func (BlockUpdate) Type() packet.Type { return TypeBlockUpdate }
func (p BlockUpdate) Handle(l Listener) { l.HandleBlockUpdate(p) }

func blockUpdateCodec(blocks *registry.Registry[registry.Block]) codec.Codec[BlockUpdate] {
	return codec.Composite2(
		codec.Get("pos", codec.BlockPos, func(p BlockUpdate) protocol.BlockPos { return p.Pos }),
		codec.Get("block", blocks.Codec(), func(p BlockUpdate) registry.Block { return p.Block }),
		func(pos protocol.BlockPos, block registry.Block) BlockUpdate { return BlockUpdate{Pos: pos, Block: block} },
	)
}

const (
	// LightSectionSize is the byte size of one section's nibble array.
	LightSectionSize = 2048
	// MaxLightSections bounds the number of arrays per light list.
	MaxLightSections = 4096
)

// LightUpdate carries sky and block light for one chunk column. Bit i of a
// mask refers to section i counted from one below the lowest world section.
// Each set bit of SkyMask (BlockMask) has one array in SkyUpdates
// (BlockUpdates), in ascending bit order; the Empty masks mark sections whose
// light is all zero.
type LightUpdate struct {
	ChunkX         int32
	ChunkZ         int32
	SkyMask        protocol.BitSet
	BlockMask      protocol.BitSet
	EmptySkyMask   protocol.BitSet
	EmptyBlockMask protocol.BitSet
	SkyUpdates     [][]byte
	BlockUpdates   [][]byte
}

func (LightUpdate) Type() packet.Type { return TypeLightUpdate }
func (p LightUpdate) Handle(l Listener) { l.HandleLightUpdate(p) }

var lightArrays = codec.List(codec.ByteArray(LightSectionSize), MaxLightSections)

var lightUpdateCodec = codec.Composite8(
	codec.Get("chunk_x", codec.VarInt, func(p LightUpdate) int32 { return p.ChunkX }),
	codec.Get("chunk_z", codec.VarInt, func(p LightUpdate) int32 { return p.ChunkZ }),
	codec.Get("sky_mask", codec.BitSet, func(p LightUpdate) protocol.BitSet { return p.SkyMask }),
	codec.Get("block_mask", codec.BitSet, func(p LightUpdate) protocol.BitSet { return p.BlockMask }),
	codec.Get("empty_sky_mask", codec.BitSet, func(p LightUpdate) protocol.BitSet { return p.EmptySkyMask }),
	codec.Get("empty_block_mask", codec.BitSet, func(p LightUpdate) protocol.BitSet { return p.EmptyBlockMask }),
	codec.Get("sky_updates", lightArrays, func(p LightUpdate) [][]byte { return p.SkyUpdates }),
	codec.Get("block_updates", lightArrays, func(p LightUpdate) [][]byte { return p.BlockUpdates }),
	func(x, z int32, sky, block, emptySky, emptyBlock protocol.BitSet, skyUpdates, blockUpdates [][]byte) LightUpdate {
		return LightUpdate{
			ChunkX:         x,
			ChunkZ:         z,
			SkyMask:        sky,
			BlockMask:      block,
			EmptySkyMask:   emptySky,
			EmptyBlockMask: emptyBlock,
			SkyUpdates:     skyUpdates,
			BlockUpdates:   blockUpdates,
		}
	},
)
