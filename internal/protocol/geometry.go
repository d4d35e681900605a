package protocol

import (
	"fmt"
	"io"
	"math"
)

// Vec3 is an absolute position or offset in blocks.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func ReadVec3(r io.Reader) (Vec3, error) {
	x, err := ReadDouble(r)
	if err != nil {
		return Vec3{}, err
	}
	y, err := ReadDouble(r)
	if err != nil {
		return Vec3{}, err
	}
	z, err := ReadDouble(r)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{X: x, Y: y, Z: z}, nil
}

func WriteVec3(w io.Writer, v Vec3) error {
	if err := WriteDouble(w, v.X); err != nil {
		return err
	}
	if err := WriteDouble(w, v.Y); err != nil {
		return err
	}
	return WriteDouble(w, v.Z)
}

// BlockPos is a block coordinate packed on the wire into one int64:
// 26 bits x, 26 bits z, 12 bits y.
type BlockPos struct {
	X int32
	Y int32
	Z int32
}

// Pack round-trips x and z in [-2^25, 2^25) and y in [-2048, 2048); other
// values are truncated to their low bits.
func (p BlockPos) Pack() int64 {
	ux := uint64(int64(p.X) & 0x3FFFFFF)
	uy := uint64(int64(p.Y) & 0xFFF)
	uz := uint64(int64(p.Z) & 0x3FFFFFF)
	return int64((ux << 38) | (uz << 12) | uy)
}

func UnpackBlockPos(raw int64) BlockPos {
	v := uint64(raw)
	return BlockPos{
		X: signExtendInt32(int64((v>>38)&0x3FFFFFF), 26),
		Y: signExtendInt32(int64(v&0xFFF), 12),
		Z: signExtendInt32(int64((v>>12)&0x3FFFFFF), 26),
	}
}

// Center returns the middle of the block.
func (p BlockPos) Center() Vec3 {
	return Vec3{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5, Z: float64(p.Z) + 0.5}
}

// Containing returns the block that holds v.
func Containing(v Vec3) BlockPos {
	return BlockPos{
		X: int32(math.Floor(v.X)),
		Y: int32(math.Floor(v.Y)),
		Z: int32(math.Floor(v.Z)),
	}
}

func ReadBlockPos(r io.Reader) (BlockPos, error) {
	raw, err := ReadInt64(r)
	if err != nil {
		return BlockPos{}, err
	}
	return UnpackBlockPos(raw), nil
}

func WriteBlockPos(w io.Writer, p BlockPos) error {
	return WriteInt64(w, p.Pack())
}

func signExtendInt32(value int64, bits uint) int32 {
	shift := 64 - bits
	return int32((value << shift) >> shift)
}

// AngleStep is the quantization step of a packed angle, in degrees.
const AngleStep = 360.0 / 256.0

// PackDegrees packs an angle into one byte at 256 steps per turn.
func PackDegrees(degrees float32) byte {
	return byte(int32(math.Floor(float64(degrees) * 256.0 / 360.0)))
}

// UnpackDegrees is the inverse of PackDegrees, in [-180, 180).
func UnpackDegrees(b byte) float32 {
	return float32(int8(b)) * 360.0 / 256.0
}
