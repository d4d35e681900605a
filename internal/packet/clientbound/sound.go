package clientbound

import (
	"fmt"
	"math"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

type SoundSource int32

const (
	SourceMaster SoundSource = iota
	SourceMusic
	SourceRecord
	SourceWeather
	SourceBlock
	SourceHostile
	SourceNeutral
	SourcePlayer
	SourceAmbient
	SourceVoice
	soundSourceCount
)

var soundSourceNames = [...]string{
	"master", "music", "record", "weather", "block",
	"hostile", "neutral", "player", "ambient", "voice",
}

func (s SoundSource) String() string {
	if s < 0 || s >= soundSourceCount {
		return fmt.Sprintf("source(%d)", int32(s))
	}
	return soundSourceNames[s]
}

// soundPosition is sent as three ints in 1/8 blocks.
var soundPosition = codec.Map(
	codec.Composite3(
		codec.Get("x", codec.Int, func(v [3]int32) int32 { return v[0] }),
		codec.Get("y", codec.Int, func(v [3]int32) int32 { return v[1] }),
		codec.Get("z", codec.Int, func(v [3]int32) int32 { return v[2] }),
		func(x, y, z int32) [3]int32 { return [3]int32{x, y, z} },
	),
	func(v [3]int32) (protocol.Vec3, error) {
		return protocol.Vec3{X: float64(v[0]) / 8, Y: float64(v[1]) / 8, Z: float64(v[2]) / 8}, nil
	},
	func(p protocol.Vec3) [3]int32 {
		return [3]int32{
			int32(math.Floor(p.X * 8)),
			int32(math.Floor(p.Y * 8)),
			int32(math.Floor(p.Z * 8)),
		}
	},
)

// Sound plays a sound event at a fixed position. Seed selects among the
// event's variants so every client hears the same one.
type Sound struct {
	Sound  registry.SoundEvent
	Source SoundSource
	Pos    protocol.Vec3
	Volume float32
	Pitch  float32
	Seed   int64
}

func (Sound) Type() packet.Type { return TypeSound }
func (p Sound) Handle(l Listener) { l.HandleSound(p) }

func soundCodec(sounds *registry.Registry[registry.SoundEvent]) codec.Codec[Sound] {
	return codec.Composite6(
		codec.Get("sound", sounds.Codec(), func(p Sound) registry.SoundEvent { return p.Sound }),
		codec.Get("source", codec.Enum[SoundSource](int(soundSourceCount)), func(p Sound) SoundSource { return p.Source }),
		codec.Get("pos", soundPosition, func(p Sound) protocol.Vec3 { return p.Pos }),
		codec.Get("volume", codec.Float, func(p Sound) float32 { return p.Volume }),
		codec.Get("pitch", codec.Float, func(p Sound) float32 { return p.Pitch }),
		codec.Get("seed", codec.Long, func(p Sound) int64 { return p.Seed }),
		func(sound registry.SoundEvent, source SoundSource, pos protocol.Vec3, volume, pitch float32, seed int64) Sound {
			return Sound{Sound: sound, Source: source, Pos: pos, Volume: volume, Pitch: pitch, Seed: seed}
		},
	)
}
