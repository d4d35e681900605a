// Package session implements the server side of a play connection: it keeps
// each player's state, relays movement between players and fires
// advancement triggers.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/advancement"
	"github.com/Versifine/mcwire/internal/event"
	"github.com/Versifine/mcwire/internal/logger"
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
	"github.com/Versifine/mcwire/internal/tracker"
)

const PlayerEntityType = "minecraft:player"

// Sender delivers clientbound packets to one connection.
type Sender interface {
	WritePacket(p clientbound.Packet) error
	RemoteAddr() string
}

type Options struct {
	Bus          *event.Bus
	Triggers     *advancement.Triggers
	Advancements []advancement.Advancement
	World        World
	Spawn        protocol.Vec3
}

// Hub is the set of sessions sharing one world. Session state is guarded by
// the hub's mutex. Packets are queued on their session while it is held and
// written after it is released, so every connection sees them in hub order.
type Hub struct {
	set        *registry.Set
	opts       Options
	playerType registry.EntityType
	log        *slog.Logger

	mu           sync.Mutex
	sessions     map[uuid.UUID]*Session
	nextEntityID int32
}

func NewHub(set *registry.Set, opts Options) (*Hub, error) {
	playerType, ok := set.EntityTypes.ByName(PlayerEntityType)
	if !ok {
		return nil, fmt.Errorf("session: entity type %s is not in the registry snapshot", PlayerEntityType)
	}
	if opts.World == nil {
		opts.World = FlatWorld{}
	}
	return &Hub{
		set:          set,
		opts:         opts,
		playerType:   playerType,
		log:          logger.For("session"),
		sessions:     make(map[uuid.UUID]*Session),
		nextEntityID: 1,
	}, nil
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

type delivery struct {
	to  *Session
	pkt clientbound.Packet
}

// post queues out on the target sessions. It must be called with h.mu held.
func post(out []delivery) {
	for _, d := range out {
		d.to.post(d.pkt)
	}
}

// flush writes what post queued. It must be called without h.mu.
func flush(out []delivery) {
	for _, d := range out {
		d.to.flush()
	}
}

func (h *Hub) broadcast(pkt clientbound.Packet) {
	h.mu.Lock()
	out := make([]delivery, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, delivery{s, pkt})
	}
	post(out)
	h.mu.Unlock()
	flush(out)
}

func (h *Hub) publish(name string, evt any) {
	if h.opts.Bus != nil {
		h.opts.Bus.Publish(name, evt)
	}
}

// Join spawns a player for the connection out and introduces it to every
// other session.
func (h *Hub) Join(id uuid.UUID, out Sender) (*Session, error) {
	s := &Session{
		id:        id,
		name:      id.String()[:8],
		hub:       h,
		out:       out,
		log:       h.log.With("session", id, "remote", out.RemoteAddr()),
		pos:       h.opts.Spawn,
		onGround:  true,
		views:     make(map[int32]*tracker.ServerEntity),
		inventory: make(advancement.Inventory, InventorySize),
	}
	if h.opts.Triggers != nil {
		for _, adv := range h.opts.Advancements {
			if err := h.opts.Triggers.Register(id, adv); err != nil {
				h.opts.Triggers.RemoveAll(id)
				return nil, err
			}
		}
	}

	h.mu.Lock()
	s.entityID = h.nextEntityID
	h.nextEntityID++
	s.block = h.opts.World.BlockAt(s.pos)
	var pending []delivery
	for _, o := range h.sessions {
		o.views[s.entityID] = tracker.NewServerEntity(s.entityID, s.pos, s.yRot, s.xRot, s.onGround)
		pending = append(pending, delivery{o, h.addEntity(s)})
		s.views[o.entityID] = tracker.NewServerEntity(o.entityID, o.pos, o.yRot, o.xRot, o.onGround)
		pending = append(pending, delivery{s, h.addEntity(o)})
	}
	h.sessions[id] = s
	post(pending)
	h.mu.Unlock()

	s.log.Info("Player joined", "entity", s.entityID)
	flush(pending)
	return s, nil
}

func (h *Hub) addEntity(s *Session) clientbound.AddEntity {
	return clientbound.AddEntity{
		EntityID:   s.entityID,
		UUID:       s.id,
		EntityType: h.playerType,
		Pos:        s.pos,
		Look:       clientbound.Look{XRot: s.xRot, YRot: s.yRot, HeadYRot: s.yRot},
	}
}

func (h *Hub) leave(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.id)
	var pending []delivery
	for _, o := range h.sessions {
		delete(o.views, s.entityID)
		pending = append(pending, delivery{o, clientbound.RemoveEntities{EntityIDs: []int32{s.entityID}}})
	}
	post(pending)
	h.mu.Unlock()

	if h.opts.Triggers != nil {
		h.opts.Triggers.RemoveAll(s.id)
	}
	flush(pending)
	s.log.Info("Player left", "entity", s.entityID)
}
