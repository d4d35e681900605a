package serverbound

import (
	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
)

const (
	flagOnGround            = 1
	flagHorizontalCollision = 2
)

// MoveFlags is the status byte shared by every MovePlayer variant.
type MoveFlags struct {
	OnGround            bool
	HorizontalCollision bool
}

var moveFlagsCodec = codec.Map(codec.Byte,
	func(b byte) (MoveFlags, error) {
		return MoveFlags{
			OnGround:            b&flagOnGround != 0,
			HorizontalCollision: b&flagHorizontalCollision != 0,
		}, nil
	},
	func(f MoveFlags) byte {
		var b byte
		if f.OnGround {
			b |= flagOnGround
		}
		if f.HorizontalCollision {
			b |= flagHorizontalCollision
		}
		return b
	},
)

// MovePlayer is one of MovePlayerPos, MovePlayerRot, MovePlayerPosRot and
// MovePlayerStatusOnly. Each variant has its own packet id and carries only
// the fields that changed.
type MovePlayer interface {
	Type() packet.Type
	Status() MoveFlags
	movePlayer()
}

type MovePlayerPos struct {
	Pos   protocol.Vec3
	Flags MoveFlags
}

type MovePlayerRot struct {
	YRot, XRot float32
	Flags      MoveFlags
}

type MovePlayerPosRot struct {
	Pos        protocol.Vec3
	YRot, XRot float32
	Flags      MoveFlags
}

type MovePlayerStatusOnly struct {
	Flags MoveFlags
}

func (MovePlayerPos) Type() packet.Type { return TypeMovePlayerPos }
func (MovePlayerRot) Type() packet.Type { return TypeMovePlayerRot }
func (MovePlayerPosRot) Type() packet.Type { return TypeMovePlayerPosRot }
func (MovePlayerStatusOnly) Type() packet.Type { return TypeMovePlayerStatusOnly }

func (p MovePlayerPos) Handle(l Listener) { l.HandleMovePlayer(p) }
func (p MovePlayerRot) Handle(l Listener) { l.HandleMovePlayer(p) }
func (p MovePlayerPosRot) Handle(l Listener) { l.HandleMovePlayer(p) }
func (p MovePlayerStatusOnly) Handle(l Listener) { l.HandleMovePlayer(p) }

func (p MovePlayerPos) Status() MoveFlags { return p.Flags }
func (p MovePlayerRot) Status() MoveFlags { return p.Flags }
func (p MovePlayerPosRot) Status() MoveFlags { return p.Flags }
func (p MovePlayerStatusOnly) Status() MoveFlags { return p.Flags }

func (MovePlayerPos) movePlayer() {}
func (MovePlayerRot) movePlayer() {}
func (MovePlayerPosRot) movePlayer() {}
func (MovePlayerStatusOnly) movePlayer() {}

var movePlayerPosCodec = codec.Composite2(
	codec.Get("pos", codec.Vec3, func(p MovePlayerPos) protocol.Vec3 { return p.Pos }),
	codec.Get("flags", moveFlagsCodec, func(p MovePlayerPos) MoveFlags { return p.Flags }),
	func(pos protocol.Vec3, flags MoveFlags) MovePlayerPos { return MovePlayerPos{Pos: pos, Flags: flags} },
)

var movePlayerRotCodec = codec.Composite3(
	codec.Get("y_rot", codec.Float, func(p MovePlayerRot) float32 { return p.YRot }),
	codec.Get("x_rot", codec.Float, func(p MovePlayerRot) float32 { return p.XRot }),
	codec.Get("flags", moveFlagsCodec, func(p MovePlayerRot) MoveFlags { return p.Flags }),
	func(yRot, xRot float32, flags MoveFlags) MovePlayerRot {
		return MovePlayerRot{YRot: yRot, XRot: xRot, Flags: flags}
	},
)

var movePlayerPosRotCodec = codec.Composite4(
	codec.Get("pos", codec.Vec3, func(p MovePlayerPosRot) protocol.Vec3 { return p.Pos }),
	codec.Get("y_rot", codec.Float, func(p MovePlayerPosRot) float32 { return p.YRot }),
	codec.Get("x_rot", codec.Float, func(p MovePlayerPosRot) float32 { return p.XRot }),
	codec.Get("flags", moveFlagsCodec, func(p MovePlayerPosRot) MoveFlags { return p.Flags }),
	func(pos protocol.Vec3, yRot, xRot float32, flags MoveFlags) MovePlayerPosRot {
		return MovePlayerPosRot{Pos: pos, YRot: yRot, XRot: xRot, Flags: flags}
	},
)

var movePlayerStatusOnlyCodec = codec.Composite1(
	codec.Get("flags", moveFlagsCodec, func(p MovePlayerStatusOnly) MoveFlags { return p.Flags }),
	func(flags MoveFlags) MovePlayerStatusOnly { return MovePlayerStatusOnly{Flags: flags} },
)
