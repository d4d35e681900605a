package tracker

import (
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
	"github.com/Versifine/mcwire/internal/vecdelta"
)

// Entity is the receiving side's view of one entity.
type Entity struct {
	ID       int32
	Type     registry.EntityType
	Pos      protocol.Vec3
	YRot     float32
	XRot     float32
	OnGround bool
}

type clientEntity struct {
	Entity
	pos *vecdelta.Codec
}

// ClientEntities applies entity packets from one connection. It is used from
// that connection's read loop only.
type ClientEntities struct {
	entities map[int32]*clientEntity
}

func NewClientEntities() *ClientEntities {
	return &ClientEntities{entities: make(map[int32]*clientEntity)}
}

func (c *ClientEntities) Get(id int32) (Entity, bool) {
	e, ok := c.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.Entity, true
}

func (c *ClientEntities) Len() int {
	return len(c.entities)
}

func (c *ClientEntities) AddEntity(p clientbound.AddEntity) {
	c.entities[p.EntityID] = &clientEntity{
		Entity: Entity{
			ID:   p.EntityID,
			Type: p.EntityType,
			Pos:  p.Pos,
			YRot: p.Look.YRot,
			XRot: p.Look.XRot,
		},
		pos: vecdelta.New(p.Pos),
	}
}

// MoveEntity applies a relative move. It reports false for an unknown
// entity, which the caller may log and ignore.
func (c *ClientEntities) MoveEntity(p clientbound.MoveEntity) bool {
	e, ok := c.entities[p.Entity()]
	if !ok {
		return false
	}
	switch m := p.(type) {
	case clientbound.MoveEntityPos:
		e.moveTo(int64(m.DX), int64(m.DY), int64(m.DZ))
	case clientbound.MoveEntityRot:
		e.YRot, e.XRot = m.YRot, m.XRot
	case clientbound.MoveEntityPosRot:
		e.moveTo(int64(m.DX), int64(m.DY), int64(m.DZ))
		e.YRot, e.XRot = m.YRot, m.XRot
	}
	e.OnGround = p.OnGround()
	return true
}

func (e *clientEntity) moveTo(dx, dy, dz int64) {
	pos := e.pos.Decode(dx, dy, dz)
	e.pos.SetBase(pos)
	e.Pos = pos
}

func (c *ClientEntities) TeleportEntity(p clientbound.TeleportEntity) bool {
	e, ok := c.entities[p.EntityID]
	if !ok {
		return false
	}
	e.pos.SetBase(p.Pos)
	e.Pos = p.Pos
	e.YRot, e.XRot = p.YRot, p.XRot
	e.OnGround = p.IsOnGround
	return true
}

func (c *ClientEntities) RemoveEntities(p clientbound.RemoveEntities) {
	for _, id := range p.EntityIDs {
		delete(c.entities, id)
	}
}

// Apply routes any entity packet to the matching method and reports whether
// p was one.
func (c *ClientEntities) Apply(p clientbound.Packet) bool {
	switch pkt := p.(type) {
	case clientbound.AddEntity:
		c.AddEntity(pkt)
	case clientbound.MoveEntity:
		return c.MoveEntity(pkt)
	case clientbound.TeleportEntity:
		return c.TeleportEntity(pkt)
	case clientbound.RemoveEntities:
		c.RemoveEntities(pkt)
	default:
		return false
	}
	return true
}
