package codec

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/protocol"
)

var (
	VarInt   = Of(protocol.ReadVarint, protocol.WriteVarint)
	VarLong  = Of(protocol.ReadVarLong, protocol.WriteVarLong)
	Bool     = Of(protocol.ReadBool, protocol.WriteBool)
	Byte     = Of(protocol.ReadByte, protocol.WriteByte)
	Short    = Of(protocol.ReadInt16, protocol.WriteInt16)
	Int      = Of(protocol.ReadInt32, protocol.WriteInt32)
	Long     = Of(protocol.ReadInt64, protocol.WriteInt64)
	Float    = Of(protocol.ReadFloat, protocol.WriteFloat)
	Double   = Of(protocol.ReadDouble, protocol.WriteDouble)
	UUID     = Of[uuid.UUID](protocol.ReadUUID, protocol.WriteUUID)
	BitSet   = Of(protocol.ReadBitSet, protocol.WriteBitSet)
	Vec3     = Of(protocol.ReadVec3, protocol.WriteVec3)
	BlockPos = Of(protocol.ReadBlockPos, protocol.WriteBlockPos)

	// Angle is a lossy rotation in degrees packed into one byte.
	Angle = Map(Byte,
		func(b byte) (float32, error) { return protocol.UnpackDegrees(b), nil },
		protocol.PackDegrees,
	)
)

// String is a UTF-8 string of at most maxLength UTF-16 code units.
func String(maxLength int) Codec[string] {
	return Of(
		func(r io.Reader) (string, error) { return protocol.ReadString(r, maxLength) },
		func(w io.Writer, s string) error { return protocol.WriteString(w, s, maxLength) },
	)
}

// ByteArray is a length-prefixed byte slice of at most maxLength bytes.
func ByteArray(maxLength int) Codec[[]byte] {
	return Of(
		func(r io.Reader) ([]byte, error) { return protocol.ReadByteArray(r, maxLength) },
		func(w io.Writer, b []byte) error { return protocol.WriteByteArray(w, b, maxLength) },
	)
}

// FixedBitSet is a mask of exactly n bits without a length prefix.
func FixedBitSet(n int) Codec[protocol.BitSet] {
	return Of(
		func(r io.Reader) (protocol.BitSet, error) { return protocol.ReadFixedBitSet(r, n) },
		func(w io.Writer, b protocol.BitSet) error { return protocol.WriteFixedBitSet(w, b, n) },
	)
}

// Enum encodes E by varint ordinal; ordinals outside [0,count) fail.
func Enum[E ~int32](count int) Codec[E] {
	return Of(
		func(r io.Reader) (E, error) {
			v, err := protocol.ReadEnum(r, count)
			return E(v), err
		},
		func(w io.Writer, v E) error { return protocol.WriteEnum(w, int(v), count) },
	)
}

// EnumByName encodes E by its string key in names.
func EnumByName[E ~int32](names []string) Codec[E] {
	return Of(
		func(r io.Reader) (E, error) {
			v, err := protocol.ReadEnumByName(r, names)
			return E(v), err
		},
		func(w io.Writer, v E) error { return protocol.WriteEnumByName(w, int(v), names) },
	)
}

// ByteEnum encodes E as an unsigned byte ordinal.
func ByteEnum[E ~int32](count int) Codec[E] {
	return Of(
		func(r io.Reader) (E, error) {
			b, err := protocol.ReadByte(r)
			if err != nil {
				return 0, err
			}
			if int(b) >= count {
				return 0, fmt.Errorf("%w: %d not in [0,%d)", protocol.ErrUnknownEnum, b, count)
			}
			return E(b), nil
		},
		func(w io.Writer, v E) error {
			if v < 0 || int(v) >= count {
				return fmt.Errorf("%w: %d not in [0,%d)", protocol.ErrUnknownEnum, v, count)
			}
			return protocol.WriteByte(w, byte(v))
		},
	)
}
