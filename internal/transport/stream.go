// Package transport carries packet frames over TCP and WebSocket connections
// and runs the per-connection read loop.
package transport

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Versifine/mcwire/internal/protocol"
)

// FrameStream moves whole frames. Reads happen on one goroutine; writes may
// come from several.
type FrameStream interface {
	ReadFrame() (*protocol.Frame, error)
	WriteFrame(f *protocol.Frame) error
	RemoteAddr() string
	Close() error
}

// tcpStream delimits frames with a varint length prefix.
type tcpStream struct {
	conn    net.Conn
	r       *bufio.Reader
	maxSize int
	mu      sync.Mutex
}

func NewTCPStream(conn net.Conn, maxSize int) FrameStream {
	// Disable Nagle's algorithm for lower latency
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	if maxSize <= 0 {
		maxSize = protocol.MaxPacketSize
	}
	return &tcpStream{conn: conn, r: bufio.NewReader(conn), maxSize: maxSize}
}

func (s *tcpStream) ReadFrame() (*protocol.Frame, error) {
	return protocol.ReadFrame(s.r, s.maxSize)
}

func (s *tcpStream) WriteFrame(f *protocol.Frame) error {
	if err := checkFrameSize(f, s.maxSize); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return protocol.WriteFrame(s.conn, f)
}

func (s *tcpStream) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *tcpStream) Close() error {
	return s.conn.Close()
}

// wsStream carries exactly one frame per binary message; the message length
// replaces the varint length prefix.
type wsStream struct {
	conn    *websocket.Conn
	maxSize int
	mu      sync.Mutex
}

func NewWebSocketStream(conn *websocket.Conn, maxSize int) FrameStream {
	if maxSize <= 0 {
		maxSize = protocol.MaxPacketSize
	}
	conn.SetReadLimit(int64(maxSize))
	return &wsStream{conn: conn, maxSize: maxSize}
}

func (s *wsStream) ReadFrame() (*protocol.Frame, error) {
	mt, data, err := s.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, io.EOF
		}
		if err == websocket.ErrReadLimit {
			return nil, fmt.Errorf("%w: message over %d bytes", protocol.ErrPacketTooLarge, s.maxSize)
		}
		return nil, err
	}
	if mt != websocket.BinaryMessage {
		return nil, fmt.Errorf("%w: websocket message type %d", protocol.ErrInvalidPacket, mt)
	}
	if len(data) == 0 {
		return nil, protocol.ErrInvalidPacket
	}
	return protocol.ParseFrame(data)
}

func (s *wsStream) WriteFrame(f *protocol.Frame) error {
	if err := checkFrameSize(f, s.maxSize); err != nil {
		return err
	}
	data := protocol.AppendFrame(nil, f)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *wsStream) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *wsStream) Close() error {
	s.mu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	s.mu.Unlock()
	return s.conn.Close()
}

// checkFrameSize holds outgoing frames to the same limit as incoming ones.
func checkFrameSize(f *protocol.Frame, maxSize int) error {
	if n := protocol.VarIntLen(f.ID) + len(f.Payload); n > maxSize {
		return fmt.Errorf("%w: %d > %d", protocol.ErrPacketTooLarge, n, maxSize)
	}
	return nil
}
