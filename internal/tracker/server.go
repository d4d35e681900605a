// Package tracker turns entity movement into relative move packets on the
// sending side and back into positions on the receiving side.
package tracker

import (
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/vecdelta"
)

// ForceTeleportInterval is the number of Changes calls after which an
// absolute position is sent even if a relative move would fit.
const ForceTeleportInterval = 400

// ServerEntity tracks what one viewer last received about one entity. It is
// owned by the code that sends that viewer's packets.
type ServerEntity struct {
	id           int32
	pos          *vecdelta.Codec
	yRot, xRot   byte
	onGround     bool
	tick         int
	lastTeleport int
}

func NewServerEntity(id int32, pos protocol.Vec3, yRot, xRot float32, onGround bool) *ServerEntity {
	return &ServerEntity{
		id:       id,
		pos:      vecdelta.New(pos),
		yRot:     protocol.PackDegrees(yRot),
		xRot:     protocol.PackDegrees(xRot),
		onGround: onGround,
	}
}

func (e *ServerEntity) ID() int32 {
	return e.id
}

// Base is the position the viewer currently decodes deltas against.
func (e *ServerEntity) Base() protocol.Vec3 {
	return e.pos.Base()
}

// Changes returns the packet that moves the viewer's copy of the entity to
// the given state, or nil when nothing visible changed. Rotation changes
// smaller than one angle step are not sent.
func (e *ServerEntity) Changes(pos protocol.Vec3, yRot, xRot float32, onGround bool) clientbound.Packet {
	e.tick++
	y, x := protocol.PackDegrees(yRot), protocol.PackDegrees(xRot)
	rotChanged := y != e.yRot || x != e.xRot
	dx, dy, dz := e.pos.Encode(pos)
	posChanged := dx != 0 || dy != 0 || dz != 0

	teleport := !vecdelta.FitsShort(dx, dy, dz) ||
		e.tick-e.lastTeleport >= ForceTeleportInterval ||
		onGround != e.onGround

	var p clientbound.Packet
	switch {
	case teleport:
		p = clientbound.TeleportEntity{
			EntityID:   e.id,
			Pos:        pos,
			YRot:       yRot,
			XRot:       xRot,
			IsOnGround: onGround,
		}
		e.lastTeleport = e.tick
		posChanged, rotChanged = true, true
	case posChanged && rotChanged:
		p = clientbound.MoveEntityPosRot{
			EntityID:   e.id,
			DX:         int16(dx),
			DY:         int16(dy),
			DZ:         int16(dz),
			YRot:       yRot,
			XRot:       xRot,
			IsOnGround: onGround,
		}
	case posChanged:
		p = clientbound.MoveEntityPos{EntityID: e.id, DX: int16(dx), DY: int16(dy), DZ: int16(dz), IsOnGround: onGround}
	case rotChanged:
		p = clientbound.MoveEntityRot{EntityID: e.id, YRot: yRot, XRot: xRot, IsOnGround: onGround}
	default:
		return nil
	}

	if posChanged {
		e.pos.SetBase(pos)
	}
	if rotChanged {
		e.yRot, e.xRot = y, x
	}
	e.onGround = onGround
	return p
}
