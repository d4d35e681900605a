package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/event"
	"github.com/Versifine/mcwire/internal/logger"
	"github.com/Versifine/mcwire/internal/metrics"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/packet/serverbound"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

// ServerConn is the server side of a game connection.
type ServerConn = Conn[serverbound.Listener, clientbound.Listener]

// Session is what a Server hands each accepted connection to.
type Session interface {
	serverbound.Listener
	Close()
}

// SessionFactory creates the session for a new connection. The id is unique
// per connection and is used in published events.
type SessionFactory func(id uuid.UUID, c *ServerConn) (Session, error)

type Options struct {
	MaxPacketSize int
	Metrics       *metrics.Metrics
	Bus           *event.Bus
}

// Server accepts game connections over TCP and, through Handler, over
// WebSocket. All connections share one registry snapshot.
type Server struct {
	addr       string
	set        *registry.Set
	in         *packet.Protocol[serverbound.Listener]
	out        *packet.Protocol[clientbound.Listener]
	newSession SessionFactory
	opts       Options
	log        *slog.Logger

	wg sync.WaitGroup
}

func NewServer(addr string, set *registry.Set, newSession SessionFactory, opts Options) *Server {
	if opts.MaxPacketSize <= 0 {
		opts.MaxPacketSize = protocol.MaxPacketSize
	}
	return &Server{
		addr:       addr,
		set:        set,
		in:         serverbound.Protocol(),
		out:        clientbound.Protocol(set),
		newSession: newSession,
		opts:       opts,
		log:        logger.For("server"),
	}
}

// Start listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	netListener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, netListener)
}

// Serve accepts connections from l until ctx is cancelled, then waits for
// the open connections to finish.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.log.Info("Starting server", "addr", l.Addr().String(), "fingerprint", s.set.Fingerprint())
	defer l.Close()
	stop := context.AfterFunc(ctx, func() {
		s.log.Info("Shutting down server")
		_ = l.Close()
	})
	defer stop()
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				s.log.Info("Server stopped")
				return nil
			}
			s.log.Error("Error accepting connection", "error", err)
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeStream(ctx, NewTCPStream(conn, s.opts.MaxPacketSize))
		}()
	}
}

// ServeStream runs one connection to completion and closes it.
func (s *Server) ServeStream(ctx context.Context, stream FrameStream) {
	defer stream.Close()
	c := NewConn(stream, s.in, s.out, s.opts.Metrics)
	id := uuid.New()
	log := s.log.With("remote", stream.RemoteAddr(), "session", id)

	sess, err := s.newSession(id, c)
	if err != nil {
		log.Error("Error creating session", "error", err)
		return
	}
	s.opts.Metrics.ConnOpened()
	log.Info("Connection opened")
	defer func() {
		sess.Close()
		s.opts.Metrics.ConnClosed()
	}()

	err = c.Serve(ctx, sess)
	reason := "closed"
	switch {
	case errors.Is(err, ErrDesync):
		reason = "desync"
		s.publish(event.EventConnectionDesync, event.ConnectionDesync{
			Session:     id,
			Remote:      stream.RemoteAddr(),
			Packet:      packetName(err),
			Field:       protocol.Field(err),
			Fingerprint: s.set.Fingerprint(),
			Err:         err,
		})
	case err != nil:
		reason = protocol.KindOf(err).String()
	}
	log.Info("Connection closed", "reason", reason)
	s.publish(event.EventConnectionClosed, event.ConnectionClosed{Session: id, Remote: stream.RemoteAddr(), Reason: reason})
}

func (s *Server) publish(name string, evt any) {
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(name, evt)
	}
}

// packetName is the first segment of the field path, which Protocol sets to
// the packet name.
func packetName(err error) string {
	name, _, _ := strings.Cut(protocol.Field(err), ".")
	return name
}
