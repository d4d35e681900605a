package session

import (
	"log/slog"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/advancement"
	"github.com/Versifine/mcwire/internal/event"
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/packet/serverbound"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
	"github.com/Versifine/mcwire/internal/tracker"
)

// InventorySize is the number of player inventory slots; slot 0 is the held
// item.
const InventorySize = 36

// Session is one connected player. It implements serverbound.Listener and
// is driven by a single connection goroutine.
type Session struct {
	id       uuid.UUID
	name     string
	entityID int32
	hub      *Hub
	out      Sender
	log      *slog.Logger

	// guarded by hub.mu
	pos           protocol.Vec3
	yRot, xRot    float32
	onGround      bool
	sneaking      bool
	block         registry.BlockState
	views         map[int32]*tracker.ServerEntity
	inventory     advancement.Inventory
	stateID       int32
	lastKeepAlive int64

	outMu    sync.Mutex
	queue    []clientbound.Packet
	flushing bool
}

var _ serverbound.Listener = (*Session)(nil)

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) EntityID() int32 { return s.entityID }

// Close removes the player from the hub. It is safe to call twice.
func (s *Session) Close() {
	s.hub.leave(s)
}

func (s *Session) post(pkt clientbound.Packet) {
	s.outMu.Lock()
	s.queue = append(s.queue, pkt)
	s.outMu.Unlock()
}

// flush writes the queued packets in order. One goroutine writes at a time;
// packets queued meanwhile are written by that same goroutine, so a caller
// never waits on another session's slow connection.
func (s *Session) flush() {
	s.outMu.Lock()
	if s.flushing {
		s.outMu.Unlock()
		return
	}
	s.flushing = true
	for len(s.queue) > 0 {
		q := s.queue
		s.queue = nil
		s.outMu.Unlock()
		for _, pkt := range q {
			if err := s.out.WritePacket(pkt); err != nil {
				s.log.Debug("Error sending packet", "packet", pkt.Type().Name, "error", err)
			}
		}
		s.outMu.Lock()
	}
	s.flushing = false
	s.outMu.Unlock()
}

// send queues pkt outside the hub's ordering. It is for replies that no
// other goroutine's packets depend on.
func (s *Session) send(pkt clientbound.Packet) {
	s.post(pkt)
	s.flush()
}

func (s *Session) reply(msg string) {
	s.send(clientbound.SystemChat{Content: msg})
}

// playerContext must be called with hub.mu held.
func (s *Session) playerContext() *advancement.LootContext {
	return advancement.PlayerContext(advancement.Entity{
		Type:      PlayerEntityType,
		Dimension: s.hub.opts.World.Dimension(),
		Pos:       s.pos,
		BlockAt:   s.block,
		OnGround:  s.onGround,
		Sneaking:  s.sneaking,
		Mainhand:  s.inventory[0],
	})
}

func (s *Session) HandleKeepAlive(p serverbound.KeepAlive) {
	s.hub.mu.Lock()
	s.lastKeepAlive = p.ID
	s.hub.mu.Unlock()
}

func (s *Session) HandleMovePlayer(p serverbound.MovePlayer) {
	h := s.hub
	h.mu.Lock()
	switch m := p.(type) {
	case serverbound.MovePlayerPos:
		s.pos = m.Pos
	case serverbound.MovePlayerRot:
		s.yRot, s.xRot = m.YRot, m.XRot
	case serverbound.MovePlayerPosRot:
		s.pos = m.Pos
		s.yRot, s.xRot = m.YRot, m.XRot
	}
	s.onGround = p.Status().OnGround

	var pending []delivery
	for _, v := range h.sessions {
		view := v.views[s.entityID]
		if v == s || view == nil {
			continue
		}
		if pkt := view.Changes(s.pos, s.yRot, s.xRot, s.onGround); pkt != nil {
			pending = append(pending, delivery{v, pkt})
		}
	}

	block := h.opts.World.BlockAt(s.pos)
	entered := !sameBlock(block, s.block)
	s.block = block
	ctx := s.playerContext()
	post(pending)
	h.mu.Unlock()

	flush(pending)
	if entered && h.opts.Triggers != nil {
		h.opts.Triggers.FireEnterBlock(s.id, ctx, block)
	}
}

func sameBlock(a, b registry.BlockState) bool {
	return a.Block == b.Block && maps.Equal(a.Properties, b.Properties)
}

func (s *Session) HandleChat(p serverbound.Chat) {
	if len(p.Message) > 1 && p.Message[0] == '/' {
		s.runCommand(p.Message[1:])
		return
	}
	s.hub.publish(event.EventChat, event.ChatEvent{Session: s.id, Message: p.Message})
	s.hub.broadcast(clientbound.SystemChat{Content: "<" + s.name + "> " + p.Message})
}

func (s *Session) HandleCommandSuggestion(p serverbound.CommandSuggestion) {
	start, text := suggestionTarget(p.Command)
	matches := s.hub.complete(p.Command)
	suggestions := make([]clientbound.Suggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = clientbound.Suggestion{Text: m}
	}
	s.send(clientbound.CommandSuggestions{
		ID:          p.ID,
		Start:       int32(start),
		Length:      int32(len(text)),
		Suggestions: suggestions,
	})
}

func (s *Session) HandleInteract(p serverbound.Interact) {
	p.Dispatch(interactLog{s: s, target: p.EntityID})
	s.hub.mu.Lock()
	s.sneaking = p.Sneaking
	s.hub.mu.Unlock()
}

type interactLog struct {
	s      *Session
	target int32
}

func (l interactLog) OnInteraction(hand serverbound.Hand) {
	l.s.log.Debug("Interact", "target", l.target, "hand", hand)
}

func (l interactLog) OnInteractionAt(hand serverbound.Hand, location protocol.Vec3) {
	l.s.log.Debug("Interact at", "target", l.target, "hand", hand, "location", location)
}

func (l interactLog) OnAttack() {
	l.s.log.Debug("Attack", "target", l.target)
}

func (s *Session) HandlePlayerAction(p serverbound.PlayerAction) {
	switch p.Action {
	case serverbound.ReleaseUseItem:
		s.consumeHeld()
	default:
		s.log.Debug("Player action", "action", p.Action, "pos", p.Pos, "direction", p.Direction, "sequence", p.Sequence)
	}
}

// consumeHeld uses up one of the held item.
func (s *Session) consumeHeld() {
	h := s.hub
	h.mu.Lock()
	held := s.inventory[0]
	if held.IsEmpty() {
		h.mu.Unlock()
		return
	}
	ctx := s.playerContext()
	left := held
	left.Count--
	if left.Count == 0 {
		left = registry.ItemStack{}
	}
	s.inventory[0] = left
	s.stateID++
	slot := clientbound.ContainerSetSlot{StateID: s.stateID, Slot: 0, Item: left}
	h.mu.Unlock()

	s.send(slot)
	if h.opts.Triggers != nil {
		h.opts.Triggers.FireConsumeItem(s.id, ctx, registry.ItemStack{Item: held.Item, Count: 1})
	}
}

func (s *Session) HandleSignUpdate(p serverbound.SignUpdate) {
	s.log.Info("Sign updated", "pos", p.Pos, "front", p.IsFrontText, "lines", p.Lines)
}
