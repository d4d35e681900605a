package serverbound

import (
	"fmt"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
)

type Hand int32

const (
	MainHand Hand = iota
	OffHand
	handCount
)

func (h Hand) String() string {
	switch h {
	case MainHand:
		return "main_hand"
	case OffHand:
		return "off_hand"
	default:
		return fmt.Sprintf("hand(%d)", int32(h))
	}
}

var handCodec = codec.Enum[Hand](int(handCount))

// Interact is a click on an entity. Action is InteractWith, Attack or
// InteractAt.
type Interact struct {
	EntityID int32
	Action   InteractAction
	Sneaking bool
}

func (Interact) Type() packet.Type { return TypeInteract }
func (p Interact) Handle(l Listener) { l.HandleInteract(p) }

// InteractHandler receives the action of an Interact packet.
type InteractHandler interface {
	OnInteraction(hand Hand)
	OnInteractionAt(hand Hand, location protocol.Vec3)
	OnAttack()
}

func (p Interact) Dispatch(h InteractHandler) {
	switch a := p.Action.(type) {
	case InteractWith:
		h.OnInteraction(a.Hand)
	case Attack:
		h.OnAttack()
	case InteractAt:
		h.OnInteractionAt(a.Hand, a.Location)
	}
}

type InteractAction interface {
	interactAction() interactActionType
}

type interactActionType int32

const (
	actionInteract interactActionType = iota
	actionAttack
	actionInteractAt
	interactActionCount
)

type InteractWith struct {
	Hand Hand
}

type Attack struct{}

// InteractAt targets a point on the entity, relative to its position.
type InteractAt struct {
	Location protocol.Vec3
	Hand     Hand
}

func (InteractWith) interactAction() interactActionType { return actionInteract }
func (Attack) interactAction() interactActionType { return actionAttack }
func (InteractAt) interactAction() interactActionType { return actionInteractAt }

// interactLocation is sent as three floats.
var interactLocation = codec.Map(
	codec.Composite3(
		codec.Get("x", codec.Float, func(v [3]float32) float32 { return v[0] }),
		codec.Get("y", codec.Float, func(v [3]float32) float32 { return v[1] }),
		codec.Get("z", codec.Float, func(v [3]float32) float32 { return v[2] }),
		func(x, y, z float32) [3]float32 { return [3]float32{x, y, z} },
	),
	func(v [3]float32) (protocol.Vec3, error) {
		return protocol.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}, nil
	},
	func(v protocol.Vec3) [3]float32 { return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)} },
)

var interactActions = [...]struct {
	name  string
	codec codec.Codec[InteractAction]
}{
	actionInteract: {"interact", codec.Variant[InteractAction](codec.Composite1(
		codec.Get("hand", handCodec, func(a InteractWith) Hand { return a.Hand }),
		func(hand Hand) InteractWith { return InteractWith{Hand: hand} },
	))},
	actionAttack: {"attack", codec.Variant[InteractAction](codec.Unit(Attack{}))},
	actionInteractAt: {"interact_at", codec.Variant[InteractAction](codec.Composite2(
		codec.Get("location", interactLocation, func(a InteractAt) protocol.Vec3 { return a.Location }),
		codec.Get("hand", handCodec, func(a InteractAt) Hand { return a.Hand }),
		func(loc protocol.Vec3, hand Hand) InteractAt { return InteractAt{Location: loc, Hand: hand} },
	))},
}

var interactActionCodec = codec.Dispatch(
	codec.Field("action", codec.Enum[interactActionType](int(interactActionCount))),
	func(a InteractAction) interactActionType {
		if a == nil {
			return -1
		}
		return a.interactAction()
	},
	func(t interactActionType) (codec.Codec[InteractAction], error) {
		if t < 0 || t >= interactActionCount {
			return codec.Codec[InteractAction]{}, fmt.Errorf("%w: interact action %d", protocol.ErrUnknownEnum, t)
		}
		a := interactActions[t]
		return codec.Field(a.name, a.codec), nil
	},
)

var interactCodec = codec.Composite3(
	codec.Get("entity_id", codec.VarInt, func(p Interact) int32 { return p.EntityID }),
	codec.Embed(interactActionCodec, func(p Interact) InteractAction { return p.Action }),
	codec.Get("sneaking", codec.Bool, func(p Interact) bool { return p.Sneaking }),
	func(id int32, action InteractAction, sneaking bool) Interact {
		return Interact{EntityID: id, Action: action, Sneaking: sneaking}
	},
)
