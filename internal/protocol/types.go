package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Declared string caps, in UTF-16 code units as the peer counts them.
const (
	MaxStringLength            = 32767
	MaxComponentLength         = 262144
	MaxChatLength              = 256
	MaxSignLineLength          = 384
	MaxCommandSuggestionLength = 32500
)

func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	return readOne(r, buf[:])
}

func WriteByte(w io.Writer, value byte) error {
	_, err := w.Write([]byte{value})
	return err
}

func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func WriteBool(w io.Writer, value bool) error {
	var b byte
	if value {
		b = 1
	}
	return WriteByte(w, b)
}

func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUnsignedShort(r)
	return int16(v), err
}

func WriteInt16(w io.Writer, value int16) error {
	return WriteUnsignedShort(w, uint16(value))
}

func ReadUnsignedShort(r io.Reader) (uint16, error) {
	var buf [2]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func WriteUnsignedShort(w io.Writer, value uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func WriteInt32(w io.Writer, value int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteInt64(w io.Writer, value int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadFloat(r io.Reader) (float32, error) {
	v, err := ReadInt32(r)
	return math.Float32frombits(uint32(v)), err
}

func WriteFloat(w io.Writer, value float32) error {
	return WriteInt32(w, int32(math.Float32bits(value)))
}

func ReadDouble(r io.Reader) (float64, error) {
	v, err := ReadInt64(r)
	return math.Float64frombits(uint64(v)), err
}

func WriteDouble(w io.Writer, value float64) error {
	return WriteInt64(w, int64(math.Float64bits(value)))
}

// readLength reads a varint length prefix and rejects it before any
// allocation when it is negative or above limit.
func readLength(r io.Reader, limit int) (int, error) {
	n, err := ReadVarint(r)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if int(n) > limit {
		return 0, fmt.Errorf("%w: %d > %d", ErrSizeLimit, n, limit)
	}
	return int(n), nil
}

// ReadString reads a length-prefixed UTF-8 string holding at most maxLength
// UTF-16 code units. The byte length is checked against maxLength*3 before
// the payload is read.
func ReadString(r io.Reader, maxLength int) (string, error) {
	n, err := readLength(r, maxLength*3)
	if err != nil {
		return "", err
	}
	strBytes := make([]byte, n)
	if _, err := io.ReadFull(r, strBytes); err != nil {
		return "", err
	}
	if !utf8.Valid(strBytes) {
		return "", ErrInvalidString
	}
	s := string(strBytes)
	if units := UTF16Len(s); units > maxLength {
		return "", fmt.Errorf("%w: string of %d chars > %d", ErrSizeLimit, units, maxLength)
	}
	return s, nil
}

func WriteString(w io.Writer, s string, maxLength int) error {
	if units := UTF16Len(s); units > maxLength {
		return fmt.Errorf("%w: string of %d chars > %d", ErrSizeLimit, units, maxLength)
	}
	if len(s) > maxLength*3 {
		return fmt.Errorf("%w: string of %d bytes > %d", ErrSizeLimit, len(s), maxLength*3)
	}
	if err := WriteVarint(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// UTF16Len counts s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// ReadByteArray reads a length-prefixed byte array of at most maxLength bytes.
func ReadByteArray(r io.Reader, maxLength int) ([]byte, error) {
	n, err := readLength(r, maxLength)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func WriteByteArray(w io.Writer, data []byte, maxLength int) error {
	if len(data) > maxLength {
		return fmt.Errorf("%w: %d > %d", ErrSizeLimit, len(data), maxLength)
	}
	if err := WriteVarint(w, int32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// ReadEnum reads a varint ordinal into [0, count).
func ReadEnum(r io.Reader, count int) (int, error) {
	ordinal, err := ReadVarint(r)
	if err != nil {
		return 0, err
	}
	if ordinal < 0 || int(ordinal) >= count {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrUnknownEnum, ordinal, count)
	}
	return int(ordinal), nil
}

func WriteEnum(w io.Writer, ordinal, count int) error {
	if ordinal < 0 || ordinal >= count {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrUnknownEnum, ordinal, count)
	}
	return WriteVarint(w, int32(ordinal))
}

// ReadEnumByName reads a string key and resolves it against names.
func ReadEnumByName(r io.Reader, names []string) (int, error) {
	s, err := ReadString(r, MaxStringLength)
	if err != nil {
		return 0, err
	}
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEnum, s)
}

func WriteEnumByName(w io.Writer, ordinal int, names []string) error {
	if ordinal < 0 || ordinal >= len(names) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrUnknownEnum, ordinal, len(names))
	}
	return WriteString(w, names[ordinal], MaxStringLength)
}

func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	_, err := io.ReadFull(r, id[:])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func WriteUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}
