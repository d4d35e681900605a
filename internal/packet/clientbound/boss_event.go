package clientbound

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
)

type BossBarColor int32

const (
	ColorPink BossBarColor = iota
	ColorBlue
	ColorRed
	ColorGreen
	ColorYellow
	ColorPurple
	ColorWhite
	bossBarColorCount
)

var bossBarColorNames = [...]string{"pink", "blue", "red", "green", "yellow", "purple", "white"}

func (c BossBarColor) String() string {
	if c < 0 || c >= bossBarColorCount {
		return fmt.Sprintf("color(%d)", int32(c))
	}
	return bossBarColorNames[c]
}

type BossBarOverlay int32

const (
	OverlayProgress BossBarOverlay = iota
	OverlayNotched6
	OverlayNotched10
	OverlayNotched12
	OverlayNotched20
	bossBarOverlayCount
)

var bossBarOverlayNames = [...]string{"progress", "notched_6", "notched_10", "notched_12", "notched_20"}

func (o BossBarOverlay) String() string {
	if o < 0 || o >= bossBarOverlayCount {
		return fmt.Sprintf("overlay(%d)", int32(o))
	}
	return bossBarOverlayNames[o]
}

const (
	flagDarkenScreen   = 1
	flagPlayMusic      = 2
	flagCreateWorldFog = 4
)

// BossBarFlags are the three boolean properties packed into one byte.
type BossBarFlags struct {
	DarkenScreen   bool
	PlayMusic      bool
	CreateWorldFog bool
}

func (f BossBarFlags) pack() byte {
	var b byte
	if f.DarkenScreen {
		b |= flagDarkenScreen
	}
	if f.PlayMusic {
		b |= flagPlayMusic
	}
	if f.CreateWorldFog {
		b |= flagCreateWorldFog
	}
	return b
}

func unpackBossBarFlags(b byte) BossBarFlags {
	return BossBarFlags{
		DarkenScreen:   b&flagDarkenScreen != 0,
		PlayMusic:      b&flagPlayMusic != 0,
		CreateWorldFog: b&flagCreateWorldFog != 0,
	}
}

var bossBarFlagsCodec = codec.Map(codec.Byte,
	func(b byte) (BossBarFlags, error) { return unpackBossBarFlags(b), nil },
	BossBarFlags.pack,
)

// BossEvent carries one operation on the boss bar identified by ID.
type BossEvent struct {
	ID        uuid.UUID
	Operation BossEventOperation
}

func (BossEvent) Type() packet.Type { return TypeBossEvent }
func (p BossEvent) Handle(l Listener) { l.HandleBossEvent(p) }

// BossEventHandler receives one boss bar operation with its fields unpacked.
type BossEventHandler interface {
	Add(id uuid.UUID, name string, progress float32, color BossBarColor, overlay BossBarOverlay, darkenScreen, playMusic, createWorldFog bool)
	Remove(id uuid.UUID)
	UpdateProgress(id uuid.UUID, progress float32)
	UpdateName(id uuid.UUID, name string)
	UpdateStyle(id uuid.UUID, color BossBarColor, overlay BossBarOverlay)
	UpdateProperties(id uuid.UUID, darkenScreen, playMusic, createWorldFog bool)
}

// Dispatch calls the handler method for the packet's operation.
func (p BossEvent) Dispatch(h BossEventHandler) {
	switch op := p.Operation.(type) {
	case BossEventAdd:
		h.Add(p.ID, op.Name, op.Progress, op.Color, op.Overlay, op.Flags.DarkenScreen, op.Flags.PlayMusic, op.Flags.CreateWorldFog)
	case BossEventRemove:
		h.Remove(p.ID)
	case BossEventUpdateProgress:
		h.UpdateProgress(p.ID, op.Progress)
	case BossEventUpdateName:
		h.UpdateName(p.ID, op.Name)
	case BossEventUpdateStyle:
		h.UpdateStyle(p.ID, op.Color, op.Overlay)
	case BossEventUpdateProperties:
		h.UpdateProperties(p.ID, op.Flags.DarkenScreen, op.Flags.PlayMusic, op.Flags.CreateWorldFog)
	}
}

// BossEventOperation is one of the BossEvent* operation types.
type BossEventOperation interface {
	bossEventOp() bossEventOpType
}

type bossEventOpType int32

const (
	opAdd bossEventOpType = iota
	opRemove
	opUpdateProgress
	opUpdateName
	opUpdateStyle
	opUpdateProperties
	bossEventOpCount
)

type BossEventAdd struct {
	Name     string
	Progress float32
	Color    BossBarColor
	Overlay  BossBarOverlay
	Flags    BossBarFlags
}

type BossEventRemove struct{}

type BossEventUpdateProgress struct {
	Progress float32
}

type BossEventUpdateName struct {
	Name string
}

type BossEventUpdateStyle struct {
	Color   BossBarColor
	Overlay BossBarOverlay
}

type BossEventUpdateProperties struct {
	Flags BossBarFlags
}

func (BossEventAdd) bossEventOp() bossEventOpType { return opAdd }
func (BossEventRemove) bossEventOp() bossEventOpType { return opRemove }
func (BossEventUpdateProgress) bossEventOp() bossEventOpType { return opUpdateProgress }
func (BossEventUpdateName) bossEventOp() bossEventOpType { return opUpdateName }
func (BossEventUpdateStyle) bossEventOp() bossEventOpType { return opUpdateStyle }
func (BossEventUpdateProperties) bossEventOp() bossEventOpType { return opUpdateProperties }

var (
	bossBarColor   = codec.Enum[BossBarColor](int(bossBarColorCount))
	bossBarOverlay = codec.Enum[BossBarOverlay](int(bossBarOverlayCount))
	bossBarName    = codec.String(protocol.MaxComponentLength)
)

var bossEventOps = [...]struct {
	name  string
	codec codec.Codec[BossEventOperation]
}{
	opAdd: {"add", codec.Variant[BossEventOperation](codec.Composite5(
		codec.Get("name", bossBarName, func(o BossEventAdd) string { return o.Name }),
		codec.Get("progress", codec.Float, func(o BossEventAdd) float32 { return o.Progress }),
		codec.Get("color", bossBarColor, func(o BossEventAdd) BossBarColor { return o.Color }),
		codec.Get("overlay", bossBarOverlay, func(o BossEventAdd) BossBarOverlay { return o.Overlay }),
		codec.Get("flags", bossBarFlagsCodec, func(o BossEventAdd) BossBarFlags { return o.Flags }),
		func(name string, progress float32, color BossBarColor, overlay BossBarOverlay, flags BossBarFlags) BossEventAdd {
			return BossEventAdd{Name: name, Progress: progress, Color: color, Overlay: overlay, Flags: flags}
		},
	))},
	opRemove: {"remove", codec.Variant[BossEventOperation](codec.Unit(BossEventRemove{}))},
	opUpdateProgress: {"update_progress", codec.Variant[BossEventOperation](codec.Composite1(
		codec.Get("progress", codec.Float, func(o BossEventUpdateProgress) float32 { return o.Progress }),
		func(progress float32) BossEventUpdateProgress { return BossEventUpdateProgress{Progress: progress} },
	))},
	opUpdateName: {"update_name", codec.Variant[BossEventOperation](codec.Composite1(
		codec.Get("name", bossBarName, func(o BossEventUpdateName) string { return o.Name }),
		func(name string) BossEventUpdateName { return BossEventUpdateName{Name: name} },
	))},
	opUpdateStyle: {"update_style", codec.Variant[BossEventOperation](codec.Composite2(
		codec.Get("color", bossBarColor, func(o BossEventUpdateStyle) BossBarColor { return o.Color }),
		codec.Get("overlay", bossBarOverlay, func(o BossEventUpdateStyle) BossBarOverlay { return o.Overlay }),
		func(color BossBarColor, overlay BossBarOverlay) BossEventUpdateStyle {
			return BossEventUpdateStyle{Color: color, Overlay: overlay}
		},
	))},
	opUpdateProperties: {"update_properties", codec.Variant[BossEventOperation](codec.Composite1(
		codec.Get("flags", bossBarFlagsCodec, func(o BossEventUpdateProperties) BossBarFlags { return o.Flags }),
		func(flags BossBarFlags) BossEventUpdateProperties { return BossEventUpdateProperties{Flags: flags} },
	))},
}

var bossEventOperationCodec = codec.Dispatch(
	codec.Field("operation", codec.Enum[bossEventOpType](int(bossEventOpCount))),
	func(op BossEventOperation) bossEventOpType {
		if op == nil {
			return -1
		}
		return op.bossEventOp()
	},
	func(t bossEventOpType) (codec.Codec[BossEventOperation], error) {
		if t < 0 || t >= bossEventOpCount {
			return codec.Codec[BossEventOperation]{}, fmt.Errorf("%w: boss event operation %d", protocol.ErrUnknownEnum, t)
		}
		op := bossEventOps[t]
		return codec.Field(op.name, op.codec), nil
	},
)

var bossEventCodec = codec.Composite2(
	codec.Get("id", codec.UUID, func(p BossEvent) uuid.UUID { return p.ID }),
	codec.Embed(bossEventOperationCodec, func(p BossEvent) BossEventOperation { return p.Operation }),
	func(id uuid.UUID, op BossEventOperation) BossEvent { return BossEvent{ID: id, Operation: op} },
)
