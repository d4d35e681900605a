package protocol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const MaxPacketSize = 2097152 // 2MB

// Frame is one undecoded message: its packet id and the body that follows it.
type Frame struct {
	ID      int32
	Payload []byte
}

// ReadFrame reads [varint length][varint id][payload]. The length is checked
// against maxSize before the frame is buffered; maxSize <= 0 means
// MaxPacketSize.
func ReadFrame(r io.Reader, maxSize int) (*Frame, error) {
	if maxSize <= 0 {
		maxSize = MaxPacketSize
	}
	// 1. Read Packet Length
	packetLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if packetLen <= 0 {
		return nil, ErrInvalidPacket
	}
	if int(packetLen) > maxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrPacketTooLarge, packetLen, maxSize)
	}

	// 2. Read entire packet data
	data := make([]byte, packetLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}
	return ParseFrame(data)
}

// ParseFrame splits an already delimited message into id and payload.
func ParseFrame(data []byte) (*Frame, error) {
	rd := bytes.NewReader(data)
	id, err := ReadVarint(rd)
	if err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}
	return &Frame{
		ID:      id,
		Payload: data[len(data)-rd.Len():],
	}, nil
}

// AppendFrame appends [varint id][payload] to dst, without the length prefix.
func AppendFrame(dst []byte, f *Frame) []byte {
	var idBuf [MaxVarIntLen]byte
	n := PutVarint(idBuf[:], f.ID)
	dst = append(dst, idBuf[:n]...)
	return append(dst, f.Payload...)
}

func WriteFrame(w io.Writer, f *Frame) error {
	bodyLen := VarIntLen(f.ID) + len(f.Payload)
	if bodyLen > MaxPacketSize {
		return fmt.Errorf("%w: %d > %d", ErrPacketTooLarge, bodyLen, MaxPacketSize)
	}
	buf := make([]byte, 0, MaxVarIntLen+bodyLen)
	var lenBuf [MaxVarIntLen]byte
	n := PutVarint(lenBuf[:], int32(bodyLen))
	buf = append(buf, lenBuf[:n]...)
	buf = AppendFrame(buf, f)
	_, err := w.Write(buf)
	return err
}
