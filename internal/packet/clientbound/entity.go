package clientbound

import (
	"math"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

// Look is an entity's body pitch, body yaw and head yaw in degrees.
type Look struct {
	XRot     float32
	YRot     float32
	HeadYRot float32
}

var lookCodec = codec.Composite3(
	codec.Get("x_rot", codec.Angle, func(l Look) float32 { return l.XRot }),
	codec.Get("y_rot", codec.Angle, func(l Look) float32 { return l.YRot }),
	codec.Get("head_y_rot", codec.Angle, func(l Look) float32 { return l.HeadYRot }),
	func(x, y, head float32) Look { return Look{XRot: x, YRot: y, HeadYRot: head} },
)

// velocity is sent as three shorts in 1/8000 blocks per tick, clamped to
// +-3.9 on every axis.
const (
	velocityScale = 8000.0
	maxVelocity   = 3.9
)

func packVelocity(v float64) int16 {
	v = math.Max(-maxVelocity, math.Min(maxVelocity, v))
	return int16(v * velocityScale)
}

var velocityCodec = codec.Map(
	codec.Composite3(
		codec.Get("x", codec.Short, func(v [3]int16) int16 { return v[0] }),
		codec.Get("y", codec.Short, func(v [3]int16) int16 { return v[1] }),
		codec.Get("z", codec.Short, func(v [3]int16) int16 { return v[2] }),
		func(x, y, z int16) [3]int16 { return [3]int16{x, y, z} },
	),
	func(v [3]int16) (protocol.Vec3, error) {
		return protocol.Vec3{
			X: float64(v[0]) / velocityScale,
			Y: float64(v[1]) / velocityScale,
			Z: float64(v[2]) / velocityScale,
		}, nil
	},
	func(v protocol.Vec3) [3]int16 {
		return [3]int16{packVelocity(v.X), packVelocity(v.Y), packVelocity(v.Z)}
	},
)

// AddEntity spawns an entity. Its position becomes the base of every later
// relative move for that entity.
type AddEntity struct {
	EntityID   int32
	UUID       uuid.UUID
	EntityType registry.EntityType
	Pos        protocol.Vec3
	Look       Look
	Data       int32
	Velocity   protocol.Vec3
}

func (AddEntity) Type() packet.Type { return TypeAddEntity }
func (p AddEntity) Handle(l Listener) { l.HandleAddEntity(p) }

func addEntityCodec(types *registry.Registry[registry.EntityType]) codec.Codec[AddEntity] {
	return codec.Composite7(
		codec.Get("entity_id", codec.VarInt, func(p AddEntity) int32 { return p.EntityID }),
		codec.Get("uuid", codec.UUID, func(p AddEntity) uuid.UUID { return p.UUID }),
		codec.Get("type", types.Codec(), func(p AddEntity) registry.EntityType { return p.EntityType }),
		codec.Get("pos", codec.Vec3, func(p AddEntity) protocol.Vec3 { return p.Pos }),
		codec.Get("look", lookCodec, func(p AddEntity) Look { return p.Look }),
		codec.Get("data", codec.VarInt, func(p AddEntity) int32 { return p.Data }),
		codec.Get("velocity", velocityCodec, func(p AddEntity) protocol.Vec3 { return p.Velocity }),
		func(id int32, u uuid.UUID, t registry.EntityType, pos protocol.Vec3, look Look, data int32, vel protocol.Vec3) AddEntity {
			return AddEntity{EntityID: id, UUID: u, EntityType: t, Pos: pos, Look: look, Data: data, Velocity: vel}
		},
	)
}

// MoveEntity is a relative move of one entity: MoveEntityPos, MoveEntityRot
// or MoveEntityPosRot. Position deltas are in 1/4096 blocks from the
// receiver's base for that entity.
type MoveEntity interface {
	Type() packet.Type
	Entity() int32
	OnGround() bool
	moveEntity()
}

type MoveEntityPos struct {
	EntityID   int32
	DX, DY, DZ int16
	IsOnGround bool
}

type MoveEntityRot struct {
	EntityID   int32
	YRot, XRot float32
	IsOnGround bool
}

type MoveEntityPosRot struct {
	EntityID   int32
	DX, DY, DZ int16
	YRot, XRot float32
	IsOnGround bool
}

func (MoveEntityPos) Type() packet.Type { return TypeMoveEntityPos }
func (MoveEntityRot) Type() packet.Type { return TypeMoveEntityRot }
func (MoveEntityPosRot) Type() packet.Type { return TypeMoveEntityPosRot }

func (p MoveEntityPos) Handle(l Listener) { l.HandleMoveEntity(p) }
func (p MoveEntityRot) Handle(l Listener) { l.HandleMoveEntity(p) }
func (p MoveEntityPosRot) Handle(l Listener) { l.HandleMoveEntity(p) }

func (p MoveEntityPos) Entity() int32 { return p.EntityID }
func (p MoveEntityRot) Entity() int32 { return p.EntityID }
func (p MoveEntityPosRot) Entity() int32 { return p.EntityID }

func (p MoveEntityPos) OnGround() bool { return p.IsOnGround }
func (p MoveEntityRot) OnGround() bool { return p.IsOnGround }
func (p MoveEntityPosRot) OnGround() bool { return p.IsOnGround }

func (MoveEntityPos) moveEntity() {}
func (MoveEntityRot) moveEntity() {}
func (MoveEntityPosRot) moveEntity() {}

var moveEntityPosCodec = codec.Composite5(
	codec.Get("entity_id", codec.VarInt, func(p MoveEntityPos) int32 { return p.EntityID }),
	codec.Get("dx", codec.Short, func(p MoveEntityPos) int16 { return p.DX }),
	codec.Get("dy", codec.Short, func(p MoveEntityPos) int16 { return p.DY }),
	codec.Get("dz", codec.Short, func(p MoveEntityPos) int16 { return p.DZ }),
	codec.Get("on_ground", codec.Bool, func(p MoveEntityPos) bool { return p.IsOnGround }),
	func(id int32, dx, dy, dz int16, onGround bool) MoveEntityPos {
		return MoveEntityPos{EntityID: id, DX: dx, DY: dy, DZ: dz, IsOnGround: onGround}
	},
)

var moveEntityRotCodec = codec.Composite4(
	codec.Get("entity_id", codec.VarInt, func(p MoveEntityRot) int32 { return p.EntityID }),
	codec.Get("y_rot", codec.Angle, func(p MoveEntityRot) float32 { return p.YRot }),
	codec.Get("x_rot", codec.Angle, func(p MoveEntityRot) float32 { return p.XRot }),
	codec.Get("on_ground", codec.Bool, func(p MoveEntityRot) bool { return p.IsOnGround }),
	func(id int32, yRot, xRot float32, onGround bool) MoveEntityRot {
		return MoveEntityRot{EntityID: id, YRot: yRot, XRot: xRot, IsOnGround: onGround}
	},
)

var moveEntityPosRotCodec = codec.Composite7(
	codec.Get("entity_id", codec.VarInt, func(p MoveEntityPosRot) int32 { return p.EntityID }),
	codec.Get("dx", codec.Short, func(p MoveEntityPosRot) int16 { return p.DX }),
	codec.Get("dy", codec.Short, func(p MoveEntityPosRot) int16 { return p.DY }),
	codec.Get("dz", codec.Short, func(p MoveEntityPosRot) int16 { return p.DZ }),
	codec.Get("y_rot", codec.Angle, func(p MoveEntityPosRot) float32 { return p.YRot }),
	codec.Get("x_rot", codec.Angle, func(p MoveEntityPosRot) float32 { return p.XRot }),
	codec.Get("on_ground", codec.Bool, func(p MoveEntityPosRot) bool { return p.IsOnGround }),
	func(id int32, dx, dy, dz int16, yRot, xRot float32, onGround bool) MoveEntityPosRot {
		return MoveEntityPosRot{EntityID: id, DX: dx, DY: dy, DZ: dz, YRot: yRot, XRot: xRot, IsOnGround: onGround}
	},
)

// TeleportEntity sets an absolute position. Receivers reset their delta
// base for the entity to Pos.
type TeleportEntity struct {
	EntityID   int32
	Pos        protocol.Vec3
	YRot, XRot float32
	IsOnGround bool
}

func (TeleportEntity) Type() packet.Type { return TypeTeleportEntity }
func (p TeleportEntity) Handle(l Listener) { l.HandleTeleportEntity(p) }

var teleportEntityCodec = codec.Composite5(
	codec.Get("entity_id", codec.VarInt, func(p TeleportEntity) int32 { return p.EntityID }),
	codec.Get("pos", codec.Vec3, func(p TeleportEntity) protocol.Vec3 { return p.Pos }),
	codec.Get("y_rot", codec.Angle, func(p TeleportEntity) float32 { return p.YRot }),
	codec.Get("x_rot", codec.Angle, func(p TeleportEntity) float32 { return p.XRot }),
	codec.Get("on_ground", codec.Bool, func(p TeleportEntity) bool { return p.IsOnGround }),
	func(id int32, pos protocol.Vec3, yRot, xRot float32, onGround bool) TeleportEntity {
		return TeleportEntity{EntityID: id, Pos: pos, YRot: yRot, XRot: xRot, IsOnGround: onGround}
	},
)

// MaxRemovedEntities bounds the id list of one RemoveEntities packet.
const MaxRemovedEntities = 1 << 16

type RemoveEntities struct {
	EntityIDs []int32
}

func (RemoveEntities) Type() packet.Type { return TypeRemoveEntities }
func (p RemoveEntities) Handle(l Listener) { l.HandleRemoveEntities(p) }

var removeEntitiesCodec = codec.Composite1(
	codec.Get("entity_ids", codec.List(codec.VarInt, MaxRemovedEntities), func(p RemoveEntities) []int32 { return p.EntityIDs }),
	func(ids []int32) RemoveEntities { return RemoveEntities{EntityIDs: ids} },
)
