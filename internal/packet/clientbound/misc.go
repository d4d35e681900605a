package clientbound

import (
	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
	"github.com/Versifine/mcwire/internal/registry"
)

type KeepAlive struct {
	ID int64
}

func (KeepAlive) Type() packet.Type { return TypeKeepAlive }
func (p KeepAlive) Handle(l Listener) { l.HandleKeepAlive(p) }

var keepAliveCodec = codec.Composite1(
	codec.Get("id", codec.Long, func(p KeepAlive) int64 { return p.ID }),
	func(id int64) KeepAlive { return KeepAlive{ID: id} },
)

// SystemChat is a server message. Overlay shows it above the hotbar instead
// of in the chat window.
type SystemChat struct {
	Content string
	Overlay bool
}

func (SystemChat) Type() packet.Type { return TypeSystemChat }
func (p SystemChat) Handle(l Listener) { l.HandleSystemChat(p) }

var systemChatCodec = codec.Composite2(
	codec.Get("content", codec.String(protocol.MaxComponentLength), func(p SystemChat) string { return p.Content }),
	codec.Get("overlay", codec.Bool, func(p SystemChat) bool { return p.Overlay }),
	func(content string, overlay bool) SystemChat { return SystemChat{Content: content, Overlay: overlay} },
)

type SetTime struct {
	GameTime    int64
	DayTime     int64
	TickDayTime bool
}

func (SetTime) Type() packet.Type { return TypeSetTime }
func (p SetTime) Handle(l Listener) { l.HandleSetTime(p) }

var setTimeCodec = codec.Composite3(
	codec.Get("game_time", codec.Long, func(p SetTime) int64 { return p.GameTime }),
	codec.Get("day_time", codec.Long, func(p SetTime) int64 { return p.DayTime }),
	codec.Get("tick_day_time", codec.Bool, func(p SetTime) bool { return p.TickDayTime }),
	func(game, day int64, tick bool) SetTime { return SetTime{GameTime: game, DayTime: day, TickDayTime: tick} },
)

// ContainerSetSlot replaces one slot of an open container. ContainerID -1
// addresses the cursor.
type ContainerSetSlot struct {
	ContainerID int32
	StateID     int32
	Slot        int16
	Item        registry.ItemStack
}

func (ContainerSetSlot) Type() packet.Type { return TypeContainerSetSlot }
func (p ContainerSetSlot) Handle(l Listener) { l.HandleContainerSetSlot(p) }

func containerSetSlotCodec(items *registry.Registry[registry.Item]) codec.Codec[ContainerSetSlot] {
	return codec.Composite4(
		codec.Get("container_id", codec.VarInt, func(p ContainerSetSlot) int32 { return p.ContainerID }),
		codec.Get("state_id", codec.VarInt, func(p ContainerSetSlot) int32 { return p.StateID }),
		codec.Get("slot", codec.Short, func(p ContainerSetSlot) int16 { return p.Slot }),
		codec.Get("item", registry.ItemStackCodec(items), func(p ContainerSetSlot) registry.ItemStack { return p.Item }),
		func(container, state int32, slot int16, item registry.ItemStack) ContainerSetSlot {
			return ContainerSetSlot{ContainerID: container, StateID: state, Slot: slot, Item: item}
		},
	)
}

// MaxSuggestions bounds the suggestion list of one response.
const MaxSuggestions = 1024

type Suggestion struct {
	Text    string
	Tooltip *string
}

// CommandSuggestions answers a serverbound command suggestion request with
// the same ID. Start and Length select the replaced span of the input.
type CommandSuggestions struct {
	ID          int32
	Start       int32
	Length      int32
	Suggestions []Suggestion
}

func (CommandSuggestions) Type() packet.Type { return TypeCommandSuggestions }
func (p CommandSuggestions) Handle(l Listener) { l.HandleCommandSuggestions(p) }

var suggestionCodec = codec.Composite2(
	codec.Get("text", codec.String(protocol.MaxCommandSuggestionLength), func(s Suggestion) string { return s.Text }),
	codec.Get("tooltip", codec.Optional(codec.String(protocol.MaxComponentLength)), func(s Suggestion) *string { return s.Tooltip }),
	func(text string, tooltip *string) Suggestion { return Suggestion{Text: text, Tooltip: tooltip} },
)

var commandSuggestionsCodec = codec.Composite4(
	codec.Get("id", codec.VarInt, func(p CommandSuggestions) int32 { return p.ID }),
	codec.Get("start", codec.VarInt, func(p CommandSuggestions) int32 { return p.Start }),
	codec.Get("length", codec.VarInt, func(p CommandSuggestions) int32 { return p.Length }),
	codec.Get("suggestions", codec.List(suggestionCodec, MaxSuggestions), func(p CommandSuggestions) []Suggestion { return p.Suggestions }),
	func(id, start, length int32, suggestions []Suggestion) CommandSuggestions {
		return CommandSuggestions{ID: id, Start: start, Length: length, Suggestions: suggestions}
	},
)
