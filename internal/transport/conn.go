package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/Versifine/mcwire/internal/logger"
	"github.com/Versifine/mcwire/internal/metrics"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
)

// ErrDesync is returned by Serve when the peer used a registry id the local
// snapshot does not know. The connection is unusable until both sides agree
// on a snapshot again.
var ErrDesync = errors.New("registry snapshot desync")

// Conn decodes packets of one flow and encodes packets of the other. R is the
// listener of inbound packets and W the listener of outbound ones.
type Conn[R, W any] struct {
	stream  FrameStream
	in      *packet.Protocol[R]
	out     *packet.Protocol[W]
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewConn[R, W any](stream FrameStream, in *packet.Protocol[R], out *packet.Protocol[W], m *metrics.Metrics) *Conn[R, W] {
	return &Conn[R, W]{
		stream:  stream,
		in:      in,
		out:     out,
		metrics: m,
		log:     logger.For("transport").With("remote", stream.RemoteAddr()),
	}
}

func (c *Conn[R, W]) RemoteAddr() string {
	return c.stream.RemoteAddr()
}

func (c *Conn[R, W]) Close() error {
	return c.stream.Close()
}

// ReadPacket blocks for the next inbound packet.
func (c *Conn[R, W]) ReadPacket() (packet.Packet[R], error) {
	f, err := c.stream.ReadFrame()
	if err != nil {
		return nil, err
	}
	flow := c.in.Flow().String()
	pkt, err := c.in.Unmarshal(f)
	if err != nil {
		c.metrics.DecodeError(flow, protocol.KindOf(err).String())
		return nil, err
	}
	c.metrics.Decoded(flow, pkt.Type().Name, protocol.VarIntLen(f.ID)+len(f.Payload))
	return pkt, nil
}

// WritePacket encodes and sends pkt. It may be called concurrently with
// ReadPacket and with other writers.
func (c *Conn[R, W]) WritePacket(pkt packet.Packet[W]) error {
	f, err := c.out.Marshal(pkt)
	if err != nil {
		return err
	}
	if err := c.stream.WriteFrame(f); err != nil {
		return fmt.Errorf("write %s: %w", pkt.Type(), err)
	}
	c.metrics.Encoded(c.out.Flow().String(), pkt.Type().Name, protocol.VarIntLen(f.ID)+len(f.Payload))
	return nil
}

// Serve reads packets and hands each to listener until the peer closes the
// stream, ctx is cancelled or a packet fails to decode. A clean close or
// cancellation returns nil. A registry miss returns an error wrapping
// ErrDesync; any other decode failure is returned as is and the connection
// should be dropped.
func (c *Conn[R, W]) Serve(ctx context.Context, listener R) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.stream.Close()
	})
	defer stop()

	for {
		pkt, err := c.ReadPacket()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			kind := protocol.KindOf(err)
			attrs := []any{"flow", c.in.Flow(), "kind", kind, "error", err}
			if field := protocol.Field(err); field != "" {
				attrs = append(attrs, "field", field)
			}
			if kind == protocol.KindRegistryMiss {
				c.log.Warn("Registry desync", attrs...)
				return fmt.Errorf("%w: %w", ErrDesync, err)
			}
			c.log.Warn("Dropping connection", attrs...)
			return err
		}
		c.log.Debug("Packet received", "packet", pkt.Type().Name)
		pkt.Handle(listener)
	}
}
