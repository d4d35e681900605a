package vecdelta

import (
	"math"
	"testing"

	"github.com/Versifine/mcwire/internal/protocol"
)

func TestEncodeBaseIsZero(t *testing.T) {
	bases := []protocol.Vec3{
		{X: 0, Y: 64, Z: 0},
		{X: 12.34567, Y: -59.999, Z: 1e6 + 0.1},
		{X: -0.5, Y: 0.5, Z: -1.00012207},
	}
	for _, p := range bases {
		c := New(protocol.Vec3{})
		c.SetBase(p)
		dx, dy, dz := c.Encode(p)
		if dx != 0 || dy != 0 || dz != 0 {
			t.Errorf("Encode(base %v) = (%d,%d,%d), want zeros", p, dx, dy, dz)
		}
		got := c.Decode(0, 0, 0)
		if math.Float64bits(got.X) != math.Float64bits(p.X) ||
			math.Float64bits(got.Y) != math.Float64bits(p.Y) ||
			math.Float64bits(got.Z) != math.Float64bits(p.Z) {
			t.Errorf("Decode(0,0,0) = %v, want bit-identical %v", got, p)
		}
	}
}

func TestRoundTripOnGrid(t *testing.T) {
	base := protocol.Vec3{X: 100.25, Y: 64, Z: -33.5}
	c := New(base)
	steps := [][3]int64{
		{1, 0, 0},
		{0, -1, 0},
		{4096, 8192, -4096},
		{-32768, 32767, 17},
		{123456, -98765, 1},
	}
	for _, s := range steps {
		want := protocol.Vec3{
			X: base.X + float64(s[0])/Scale,
			Y: base.Y + float64(s[1])/Scale,
			Z: base.Z + float64(s[2])/Scale,
		}
		dx, dy, dz := c.Encode(want)
		if dx != s[0] || dy != s[1] || dz != s[2] {
			t.Errorf("Encode(%v) = (%d,%d,%d), want %v", want, dx, dy, dz, s)
		}
		if got := c.Decode(dx, dy, dz); got != want {
			t.Errorf("Decode(%v) = %v, want %v", s, got, want)
		}
	}
}

func TestDecodeKeepsUnchangedAxis(t *testing.T) {
	base := protocol.Vec3{X: 0.1, Y: 0.2, Z: 0.3}
	c := New(base)
	got := c.Decode(4096, 0, 0)
	if got.Y != base.Y || got.Z != base.Z {
		t.Errorf("unchanged axes lost precision: %v", got)
	}
	if want := float64(quantize(0.1)+4096) / Scale; got.X != want {
		t.Errorf("X = %v, want %v", got.X, want)
	}
}

func TestQuantizationError(t *testing.T) {
	c := New(protocol.Vec3{X: 3, Y: 70, Z: -8})
	p := protocol.Vec3{X: 3.123456789, Y: 70.987654321, Z: -8.000123}
	got := c.Decode(c.Encode(p))
	step := 1 / Scale
	for _, d := range []float64{got.X - p.X, got.Y - p.Y, got.Z - p.Z} {
		if math.Abs(d) > step {
			t.Errorf("quantization error %v exceeds %v", d, step)
		}
	}
}

func TestQuantizeRoundsHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0.5 / Scale, 1},
		{-0.5 / Scale, 0},
		{-1.5 / Scale, -1},
		{2.4 / Scale, 2},
	}
	for _, tt := range tests {
		if got := quantize(tt.in); got != tt.want {
			t.Errorf("quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFitsShort(t *testing.T) {
	if !FitsShort(32767, -32768, 0) {
		t.Error("int16 limits should fit")
	}
	if FitsShort(32768, 0, 0) || FitsShort(0, 0, -32769) {
		t.Error("values beyond int16 should not fit")
	}
}
