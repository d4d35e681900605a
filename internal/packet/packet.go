// Package packet maps packet ids to codecs for one direction of a connection
// and routes decoded packets to a listener.
package packet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/protocol"
)

type Flow int

const (
	Clientbound Flow = iota
	Serverbound
)

func (f Flow) String() string {
	switch f {
	case Clientbound:
		return "clientbound"
	case Serverbound:
		return "serverbound"
	default:
		return fmt.Sprintf("flow(%d)", int(f))
	}
}

// Type identifies a packet kind within its flow.
type Type struct {
	Flow Flow
	Name string
}

func (t Type) String() string {
	return t.Flow.String() + "/" + t.Name
}

// Packet is implemented by every packet handled by a listener of type L.
// Handle calls the one listener method for this packet kind.
type Packet[L any] interface {
	Type() Type
	Handle(listener L)
}

type entry[L any] struct {
	typ   Type
	codec codec.Codec[Packet[L]]
}

// Protocol is the id table of one flow. Ids are assigned in the order packets
// are added, so the order of Add calls is part of the wire format.
type Protocol[L any] struct {
	flow    Flow
	entries []entry[L]
	ids     map[Type]int32
}

func NewProtocol[L any](flow Flow) *Protocol[L] {
	return &Protocol[L]{
		flow: flow,
		ids:  make(map[Type]int32),
	}
}

// Add appends the codec for packets of type P under t. It panics on a
// duplicate type or a type of the wrong flow, both of which are programming
// errors in a table definition.
func Add[L any, P Packet[L]](p *Protocol[L], t Type, c codec.Codec[P]) {
	if t.Flow != p.flow {
		panic(fmt.Sprintf("packet: %s added to %s protocol", t, p.flow))
	}
	if _, ok := p.ids[t]; ok {
		panic(fmt.Sprintf("packet: duplicate packet type %s", t))
	}
	p.ids[t] = int32(len(p.entries))
	p.entries = append(p.entries, entry[L]{
		typ:   t,
		codec: codec.Variant[Packet[L]](c),
	})
}

func (p *Protocol[L]) Flow() Flow {
	return p.flow
}

func (p *Protocol[L]) ID(t Type) (int32, bool) {
	id, ok := p.ids[t]
	return id, ok
}

func (p *Protocol[L]) TypeOf(id int32) (Type, bool) {
	if id < 0 || int(id) >= len(p.entries) {
		return Type{}, false
	}
	return p.entries[id].typ, true
}

// Types lists the packet types in id order.
func (p *Protocol[L]) Types() []Type {
	types := make([]Type, len(p.entries))
	for i, e := range p.entries {
		types[i] = e.typ
	}
	return types
}

// Marshal encodes pkt into an id and body.
func (p *Protocol[L]) Marshal(pkt Packet[L]) (*protocol.Frame, error) {
	t := pkt.Type()
	id, ok := p.ids[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not in the %s protocol", protocol.ErrUnknownPacket, t, p.flow)
	}
	var buf bytes.Buffer
	if err := p.entries[id].codec.Encode(&buf, pkt); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.Name, err)
	}
	return &protocol.Frame{ID: id, Payload: buf.Bytes()}, nil
}

// Unmarshal decodes the body of f. The whole payload must be consumed.
func (p *Protocol[L]) Unmarshal(f *protocol.Frame) (Packet[L], error) {
	if f.ID < 0 || int(f.ID) >= len(p.entries) {
		return nil, fmt.Errorf("%w: %s id 0x%02x", protocol.ErrUnknownPacket, p.flow, f.ID)
	}
	e := p.entries[f.ID]
	pkt, err := e.codec.Unmarshal(f.Payload)
	if err != nil {
		return nil, protocol.WithField(e.typ.Name, err)
	}
	return pkt, nil
}

// Encode writes [varint id][body] without a length prefix.
func (p *Protocol[L]) Encode(w io.Writer, pkt Packet[L]) error {
	f, err := p.Marshal(pkt)
	if err != nil {
		return err
	}
	_, err = w.Write(protocol.AppendFrame(nil, f))
	return err
}

// Decode reads one packet from data holding exactly [varint id][body].
func (p *Protocol[L]) Decode(data []byte) (Packet[L], error) {
	f, err := protocol.ParseFrame(data)
	if err != nil {
		return nil, err
	}
	return p.Unmarshal(f)
}
