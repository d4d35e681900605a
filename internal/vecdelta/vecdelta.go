// Package vecdelta encodes positions as 1/4096-block fixed-point offsets from
// an explicitly maintained base point.
package vecdelta

import (
	"math"

	"github.com/Versifine/mcwire/internal/protocol"
)

// Scale is the number of fixed-point steps per block.
const Scale = 4096.0

// Codec holds the base of one tracked stream, typically one entity as seen by
// one viewer. It has a single writer and is not safe for concurrent use.
type Codec struct {
	base protocol.Vec3
}

func New(base protocol.Vec3) *Codec {
	return &Codec{base: base}
}

func (c *Codec) Base() protocol.Vec3 {
	return c.base
}

// SetBase resyncs the stream, e.g. on spawn or teleport. It is never called
// implicitly by Encode or Decode.
func (c *Codec) SetBase(pos protocol.Vec3) {
	c.base = pos
}

// quantize rounds half up, matching the peer's rounding of negative halves.
func quantize(v float64) int64 {
	return int64(math.Floor(v*Scale + 0.5))
}

func dequantize(v int64) float64 {
	return float64(v) / Scale
}

func (c *Codec) EncodeX(pos protocol.Vec3) int64 { return quantize(pos.X) - quantize(c.base.X) }

func (c *Codec) EncodeY(pos protocol.Vec3) int64 { return quantize(pos.Y) - quantize(c.base.Y) }

func (c *Codec) EncodeZ(pos protocol.Vec3) int64 { return quantize(pos.Z) - quantize(c.base.Z) }

// Encode returns all three deltas; (0,0,0) means pos is unchanged at this
// precision.
func (c *Codec) Encode(pos protocol.Vec3) (dx, dy, dz int64) {
	return c.EncodeX(pos), c.EncodeY(pos), c.EncodeZ(pos)
}

// Decode reconstructs a position. All-zero deltas return the base itself, and
// an axis with a zero delta keeps the base's exact coordinate.
func (c *Codec) Decode(dx, dy, dz int64) protocol.Vec3 {
	if dx == 0 && dy == 0 && dz == 0 {
		return c.base
	}
	return protocol.Vec3{
		X: decodeAxis(c.base.X, dx),
		Y: decodeAxis(c.base.Y, dy),
		Z: decodeAxis(c.base.Z, dz),
	}
}

func decodeAxis(base float64, delta int64) float64 {
	if delta == 0 {
		return base
	}
	return dequantize(quantize(base) + delta)
}

// FitsShort reports whether every delta fits the int16 fields of a relative
// move packet.
func FitsShort(dx, dy, dz int64) bool {
	return fits(dx) && fits(dy) && fits(dz)
}

func fits(v int64) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}
