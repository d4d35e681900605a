package serverbound

import (
	"fmt"

	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
)

type Action int32

const (
	StartDestroyBlock Action = iota
	AbortDestroyBlock
	StopDestroyBlock
	DropAllItems
	DropItem
	ReleaseUseItem
	SwapItemWithOffhand
	actionCount
)

var actionNames = [...]string{
	"start_destroy_block", "abort_destroy_block", "stop_destroy_block",
	"drop_all_items", "drop_item", "release_use_item", "swap_item_with_offhand",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int32(a))
	}
	return actionNames[a]
}

type Direction int32

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
	directionCount
)

var directionNames = [...]string{"down", "up", "north", "south", "west", "east"}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return fmt.Sprintf("direction(%d)", int32(d))
	}
	return directionNames[d]
}

// PlayerAction reports digging and item actions. Sequence is echoed back by
// the server to acknowledge the predicted block change.
type PlayerAction struct {
	Action    Action
	Pos       protocol.BlockPos
	Direction Direction
	Sequence  int32
}

func (PlayerAction) Type() packet.Type { return TypePlayerAction }
func (p PlayerAction) Handle(l Listener) { l.HandlePlayerAction(p) }

var playerActionCodec = codec.Composite4(
	codec.Get("action", codec.Enum[Action](int(actionCount)), func(p PlayerAction) Action { return p.Action }),
	codec.Get("pos", codec.BlockPos, func(p PlayerAction) protocol.BlockPos { return p.Pos }),
	codec.Get("direction", codec.ByteEnum[Direction](int(directionCount)), func(p PlayerAction) Direction { return p.Direction }),
	codec.Get("sequence", codec.VarInt, func(p PlayerAction) int32 { return p.Sequence }),
	func(action Action, pos protocol.BlockPos, dir Direction, seq int32) PlayerAction {
		return PlayerAction{Action: action, Pos: pos, Direction: dir, Sequence: seq}
	},
)
